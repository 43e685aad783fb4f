package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/plugin/soft_delete"

	"github.com/jt05610/statespace"
	"github.com/jt05610/statespace/statespace"
)

var ErrNoRun = errors.New("no such run")

// Run is one stored exploration.
type Run struct {
	ID        string `gorm:"primaryKey"`
	Net       string `gorm:"index"`
	States    int
	Edges     int
	Saturated bool
	CreatedAt time.Time
	DeletedAt soft_delete.DeletedAt `gorm:"index"`
}

// StateRecord is a state of a run with its canonical marking key.
type StateRecord struct {
	ID          uint   `gorm:"primaryKey"`
	RunID       string `gorm:"index:idx_run_state,unique"`
	State       int    `gorm:"index:idx_run_state,unique"`
	Fingerprint string `gorm:"index"`
	Marking     string
}

// PlaceRecord holds the tokens of one place in one state, so states can be
// filtered by place contents in SQL.
type PlaceRecord struct {
	ID     uint   `gorm:"primaryKey"`
	RunID  string `gorm:"index:idx_run_place"`
	Place  int    `gorm:"index:idx_run_place"`
	State  int
	Size   int
	Tokens string
}

type EdgeRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"index"`
	Src        int
	Dst        int
	Transition int
}

type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func (s *Store) migrate() error {
	for _, m := range []interface{}{&Run{}, &StateRecord{}, &PlaceRecord{}, &EdgeRecord{}} {
		if err := s.db.AutoMigrate(m); err != nil {
			return err
		}
	}
	return nil
}

// Open opens or creates the SQLite database at path.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	s := &Store{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

const batchSize = 500

// Save stores res under a new run id and returns the id.
func (s *Store) Save(ctx context.Context, name string, res *statespace.Result) (string, error) {
	g := res.Graph
	edges := g.Edges()
	run := &Run{
		ID:        uuid.New().String(),
		Net:       name,
		States:    g.Len(),
		Edges:     len(edges),
		Saturated: res.Saturated,
	}
	states := make([]StateRecord, 0, g.Len())
	var places []PlaceRecord
	for _, id := range g.Nodes() {
		st, _ := g.State(id)
		states = append(states, StateRecord{
			RunID:       run.ID,
			State:       id,
			Fingerprint: st.Fingerprint,
			Marking:     st.Key,
		})
		for p, ms := range st.Marking {
			if len(ms) == 0 {
				continue
			}
			places = append(places, PlaceRecord{
				RunID:  run.ID,
				Place:  p,
				State:  id,
				Size:   ms.Size(),
				Tokens: ms.String(),
			})
		}
	}
	rows := make([]EdgeRecord, len(edges))
	for i, e := range edges {
		rows[i] = EdgeRecord{RunID: run.ID, Src: e.Src, Dst: e.Dst, Transition: e.Transition}
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		if len(states) > 0 {
			if err := tx.CreateInBatches(&states, batchSize).Error; err != nil {
				return err
			}
		}
		if len(places) > 0 {
			if err := tx.CreateInBatches(&places, batchSize).Error; err != nil {
				return err
			}
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(&rows, batchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("saved run",
		zap.String("run", run.ID),
		zap.String("net", name),
		zap.Int("states", run.States),
		zap.Int("edges", run.Edges),
	)
	return run.ID, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&runs).Error
	return runs, err
}

func (s *Store) Run(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNoRun, id)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *Store) States(ctx context.Context, runID string) ([]StateRecord, error) {
	var rows []StateRecord
	err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("state").Find(&rows).Error
	return rows, err
}

func (s *Store) Edges(ctx context.Context, runID string) ([]EdgeRecord, error) {
	var rows []EdgeRecord
	err := s.db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&rows).Error
	return rows, err
}

// StatesWithPlace returns the states of a run in which place holds at least
// min tokens.
func (s *Store) StatesWithPlace(ctx context.Context, runID string, place, min int) ([]int, error) {
	var ids []int
	err := s.db.WithContext(ctx).Model(&PlaceRecord{}).
		Where("run_id = ? and place = ? and size >= ?", runID, place, min).
		Order("state").
		Pluck("state", &ids).Error
	return ids, err
}

// Graph rebuilds the reachability graph of a run.
func (s *Store) Graph(ctx context.Context, runID string) (*statespace.Graph, error) {
	if _, err := s.Run(ctx, runID); err != nil {
		return nil, err
	}
	states, err := s.States(ctx, runID)
	if err != nil {
		return nil, err
	}
	g := statespace.NewGraph()
	for _, st := range states {
		m, err := petri.ParseMarking(st.Marking)
		if err != nil {
			return nil, fmt.Errorf("state %d: %w", st.State, err)
		}
		if id, _ := g.AddState(m); id != st.State {
			return nil, fmt.Errorf("%w: state %d stored as %d", petri.ErrInconsistent, id, st.State)
		}
	}
	edges, err := s.Edges(ctx, runID)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err := g.AddEdge(e.Src, e.Dst, e.Transition); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Delete hides a run. Its rows stay in the database.
func (s *Store) Delete(ctx context.Context, runID string) error {
	res := s.db.WithContext(ctx).Delete(&Run{}, "id = ?", runID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNoRun, runID)
	}
	return nil
}
