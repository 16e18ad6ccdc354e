// Package api exposes games over HTTP: create a game, step it round by
// round (optionally forcing the user's move), inspect state, and run Monte
// Carlo suites. Sessions live in an id-keyed map owned by this layer; the
// core game never sees the registry.
package api

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/tradewarsim/tradewar"
	"github.com/tradewarsim/tradewar/simulate"
)

// Server holds the live sessions and the profile catalog.
type Server struct {
	profiles *tradewar.ProfileCatalog
	logger   tradewar.RoundLogger

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu   sync.Mutex
	game *tradewar.Game
}

// NewServer builds a server around a profile catalog. The logger may be nil.
func NewServer(profiles *tradewar.ProfileCatalog, logger tradewar.RoundLogger) *Server {
	return &Server{
		profiles: profiles,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	router := gin.Default()

	router.GET("/profiles", s.listProfiles)
	router.POST("/games", s.createGame)
	router.GET("/games/:id", s.getGame)
	router.POST("/games/:id/rounds", s.playRound)
	router.POST("/games/:id/play", s.playFull)
	router.DELETE("/games/:id", s.deleteGame)
	router.POST("/simulations", s.runSuite)

	return router
}

type moveRequest struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Probability float64 `json:"probability"`
}

type createGameRequest struct {
	UserMoves        []moveRequest          `json:"user_moves" binding:"required"`
	ComputerMoves    []moveRequest          `json:"computer_moves" binding:"required"`
	Payoffs          []tradewar.PayoffEntry `json:"payoff_matrix" binding:"required"`
	UserStrategy     string                 `json:"user_strategy" binding:"required"`
	FirstMove        string                 `json:"first_move"`
	CooperationStart int                    `json:"cooperation_start"`
	Profile          string                 `json:"computer_profile" binding:"required"`
	NumRounds        int                    `json:"num_rounds"`
	Seed             *int64                 `json:"seed"`
}

func (s *Server) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy, err := tradewar.ParseStrategy(req.UserStrategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile := s.profiles.Get(req.Profile)
	if profile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown profile: " + req.Profile})
		return
	}

	userMoves, err := buildMoves(req.UserMoves, tradewar.User)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	computerMoves, err := buildMoves(req.ComputerMoves, tradewar.Computer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	numRounds := req.NumRounds
	if numRounds <= 0 {
		numRounds = profile.NumRounds
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	game, err := tradewar.NewGame(tradewar.GameConfig{
		UserMoves:     userMoves,
		ComputerMoves: computerMoves,
		Payoffs:       req.Payoffs,
		Strategy: tradewar.UserStrategySettings{
			Strategy:         strategy,
			FirstMove:        req.FirstMove,
			CooperationStart: req.CooperationStart,
		},
		Profile:   profile,
		NumRounds: numRounds,
	}, rand.New(rand.NewSource(seed)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.logger != nil {
		game.SetLogger(s.logger)
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &session{game: game}
	s.mu.Unlock()

	glog.Infof("Created game %s: strategy=%s profile=%s rounds=%d",
		id, req.UserStrategy, req.Profile, numRounds)

	c.JSON(http.StatusCreated, gin.H{
		"game_id":    id,
		"profile":    profile.Name,
		"num_rounds": numRounds,
	})
}

func buildMoves(reqs []moveRequest, player tradewar.Player) ([]*tradewar.Move, error) {
	moves := make([]*tradewar.Move, len(reqs))
	for i, r := range reqs {
		mt, err := tradewar.ParseMoveType(r.Type)
		if err != nil {
			return nil, err
		}
		moves[i] = &tradewar.Move{
			Name:        r.Name,
			Type:        mt,
			Probability: r.Probability,
			Player:      player,
		}
	}
	return moves, nil
}

func (s *Server) lookup(c *gin.Context) *session {
	s.mu.Lock()
	sess := s.sessions[c.Param("id")]
	s.mu.Unlock()
	if sess == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game id"})
	}
	return sess
}

type playRoundRequest struct {
	UserMove string `json:"user_move"`
}

func (s *Server) playRound(c *gin.Context) {
	sess := s.lookup(c)
	if sess == nil {
		return
	}

	var req playRoundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.game.Done() {
		c.JSON(http.StatusConflict, gin.H{"error": "game is over"})
		return
	}

	var result tradewar.RoundResult
	if req.UserMove != "" {
		var err error
		result, err = sess.game.PlayRoundWithUserMove(req.UserMove)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else {
		result = sess.game.PlayRound()
	}

	c.JSON(http.StatusOK, gin.H{
		"round": result,
		"done":  sess.game.Done(),
	})
}

func (s *Server) playFull(c *gin.Context) {
	sess := s.lookup(c)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	result := sess.game.Play()
	sess.mu.Unlock()
	c.JSON(http.StatusOK, result)
}

func (s *Server) getGame(c *gin.Context) {
	sess := s.lookup(c)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	user, computer := sess.game.Totals()
	c.JSON(http.StatusOK, gin.H{
		"round":          sess.game.Round(),
		"num_rounds":     sess.game.NumRounds(),
		"done":           sess.game.Done(),
		"user_total":     user,
		"computer_total": computer,
		"history":        sess.game.History(),
	})
}

func (s *Server) deleteGame(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown game id"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"profiles":   s.profiles.Names(),
		"strategies": tradewar.StrategyNames(),
	})
}

type suiteRequest struct {
	UserMoves        []moveRequest          `json:"user_moves" binding:"required"`
	ComputerMoves    []moveRequest          `json:"computer_moves" binding:"required"`
	Payoffs          []tradewar.PayoffEntry `json:"payoff_matrix" binding:"required"`
	Strategies       []string               `json:"user_strategies" binding:"required"`
	FirstMove        string                 `json:"first_move"`
	CooperationStart int                    `json:"cooperation_start"`
	Profile          string                 `json:"computer_profile" binding:"required"`
	NumSimulations   int                    `json:"num_simulations"`
	RoundsMean       float64                `json:"rounds_mean"`
	RoundsStd        float64                `json:"rounds_std"`
	RoundsMin        int                    `json:"rounds_min"`
	RoundsMax        int                    `json:"rounds_max"`
	Seed             int64                  `json:"seed"`
}

func (s *Server) runSuite(c *gin.Context) {
	var req suiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := s.profiles.Get(req.Profile)
	if profile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown profile: " + req.Profile})
		return
	}
	strategies := make([]tradewar.StrategyType, len(req.Strategies))
	for i, name := range req.Strategies {
		strategy, err := tradewar.ParseStrategy(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		strategies[i] = strategy
	}
	userMoves, err := buildMoves(req.UserMoves, tradewar.User)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	computerMoves, err := buildMoves(req.ComputerMoves, tradewar.Computer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	result, err := simulate.RunSuite(simulate.SuiteConfig{
		UserMoves:        userMoves,
		ComputerMoves:    computerMoves,
		Payoffs:          req.Payoffs,
		Profile:          profile,
		Strategies:       strategies,
		FirstMove:        req.FirstMove,
		CooperationStart: req.CooperationStart,
		NumSimulations:   req.NumSimulations,
		RoundsMean:       req.RoundsMean,
		RoundsStd:        req.RoundsStd,
		RoundsMin:        req.RoundsMin,
		RoundsMax:        req.RoundsMax,
		Seed:             seed,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
