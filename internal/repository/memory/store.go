// Package memory provides an in-memory implementation of every repository
// interface plus snapshot-based transactions. It backs the service tests,
// standing in for MongoDB; semantics (sort orders, not-found and duplicate
// errors, id/timestamp assignment) mirror the mongo package.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds all collections in maps keyed by ObjectID.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializes transactions

	users           map[primitive.ObjectID]domain.User
	exercises       map[primitive.ObjectID]domain.Exercise
	repetitionUnits map[primitive.ObjectID]domain.RepetitionUnit
	weightUnits     map[primitive.ObjectID]domain.WeightUnit
	routines        map[primitive.ObjectID]domain.Routine
	routineDays     map[primitive.ObjectID]domain.RoutineDay
	sessions        map[primitive.ObjectID]domain.WorkoutSession
	setGroups       map[primitive.ObjectID]domain.SetGroup
	sets            map[primitive.ObjectID]domain.Set
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:           make(map[primitive.ObjectID]domain.User),
		exercises:       make(map[primitive.ObjectID]domain.Exercise),
		repetitionUnits: make(map[primitive.ObjectID]domain.RepetitionUnit),
		weightUnits:     make(map[primitive.ObjectID]domain.WeightUnit),
		routines:        make(map[primitive.ObjectID]domain.Routine),
		routineDays:     make(map[primitive.ObjectID]domain.RoutineDay),
		sessions:        make(map[primitive.ObjectID]domain.WorkoutSession),
		setGroups:       make(map[primitive.ObjectID]domain.SetGroup),
		sets:            make(map[primitive.ObjectID]domain.Set),
	}
}

// --- TxManager ---

type snapshot struct {
	users           map[primitive.ObjectID]domain.User
	exercises       map[primitive.ObjectID]domain.Exercise
	repetitionUnits map[primitive.ObjectID]domain.RepetitionUnit
	weightUnits     map[primitive.ObjectID]domain.WeightUnit
	routines        map[primitive.ObjectID]domain.Routine
	routineDays     map[primitive.ObjectID]domain.RoutineDay
	sessions        map[primitive.ObjectID]domain.WorkoutSession
	setGroups       map[primitive.ObjectID]domain.SetGroup
	sets            map[primitive.ObjectID]domain.Set
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:           copyMap(s.users),
		exercises:       copyMap(s.exercises),
		repetitionUnits: copyMap(s.repetitionUnits),
		weightUnits:     copyMap(s.weightUnits),
		routines:        copyMap(s.routines),
		routineDays:     copyMap(s.routineDays),
		sessions:        copyMap(s.sessions),
		setGroups:       copyMap(s.setGroups),
		sets:            copyMap(s.sets),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.exercises = snap.exercises
	s.repetitionUnits = snap.repetitionUnits
	s.weightUnits = snap.weightUnits
	s.routines = snap.routines
	s.routineDays = snap.routineDays
	s.sessions = snap.sessions
	s.setGroups = snap.setGroups
	s.sets = snap.sets
}

// WithinTransaction snapshots all collections, runs fn, and restores the
// snapshot if fn fails. Transactions are serialized; individual operations
// inside fn take the regular store lock.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

var _ repository.TxManager = (*Store)(nil)

// --- UserRepository ---

func (s *Store) CreateUser(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return user.ID, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) GetUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := u
	return &out, nil
}

// Users adapts the store to repository.UserRepository.
func (s *Store) Users() repository.UserRepository { return userView{s} }

type userView struct{ s *Store }

func (v userView) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	return v.s.CreateUser(ctx, user)
}
func (v userView) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return v.s.GetUserByEmail(ctx, email)
}
func (v userView) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return v.s.GetUserByID(ctx, id)
}

// --- ExerciseRepository ---

// AddExercise seeds an exercise row directly (reference data; there is no
// engine-side create path).
func (s *Store) AddExercise(exercise domain.Exercise) domain.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exercise.ID == primitive.NilObjectID {
		exercise.ID = primitive.NewObjectID()
	}
	s.exercises[exercise.ID] = exercise
	return exercise
}

// Exercises adapts the store to repository.ExerciseRepository.
func (s *Store) Exercises() repository.ExerciseRepository { return exerciseView{s} }

type exerciseView struct{ s *Store }

func (v exerciseView) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	e, ok := v.s.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := e
	return &out, nil
}

func (v exerciseView) List(ctx context.Context) ([]domain.Exercise, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]domain.Exercise, 0, len(v.s.exercises))
	for _, e := range v.s.exercises {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (v exerciseView) SetImageKey(ctx context.Context, id primitive.ObjectID, key string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	e, ok := v.s.exercises[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.ImageKey = key
	e.UpdatedAt = time.Now().UTC()
	v.s.exercises[id] = e
	return nil
}

// --- UnitRepository ---

// Units adapts the store to repository.UnitRepository.
func (s *Store) Units() repository.UnitRepository { return unitView{s} }

type unitView struct{ s *Store }

func (v unitView) CreateRepetitionUnit(ctx context.Context, unit *domain.RepetitionUnit) (primitive.ObjectID, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	unit.ID = primitive.NewObjectID()
	v.s.repetitionUnits[unit.ID] = *unit
	return unit.ID, nil
}

func (v unitView) CreateWeightUnit(ctx context.Context, unit *domain.WeightUnit) (primitive.ObjectID, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	unit.ID = primitive.NewObjectID()
	v.s.weightUnits[unit.ID] = *unit
	return unit.ID, nil
}

func (v unitView) FirstRepetitionUnit(ctx context.Context) (*domain.RepetitionUnit, error) {
	units, _ := v.ListRepetitionUnits(ctx)
	if len(units) == 0 {
		return nil, repository.ErrNotFound
	}
	out := units[0]
	return &out, nil
}

func (v unitView) FirstWeightUnit(ctx context.Context) (*domain.WeightUnit, error) {
	units, _ := v.ListWeightUnits(ctx)
	if len(units) == 0 {
		return nil, repository.ErrNotFound
	}
	out := units[0]
	return &out, nil
}

func (v unitView) ListRepetitionUnits(ctx context.Context) ([]domain.RepetitionUnit, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]domain.RepetitionUnit, 0, len(v.s.repetitionUnits))
	for _, u := range v.s.repetitionUnits {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (v unitView) ListWeightUnits(ctx context.Context) ([]domain.WeightUnit, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]domain.WeightUnit, 0, len(v.s.weightUnits))
	for _, u := range v.s.weightUnits {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

// --- RoutineRepository ---

// Routines adapts the store to repository.RoutineRepository.
func (s *Store) Routines() repository.RoutineRepository { return routineView{s} }

type routineView struct{ s *Store }

func (v routineView) Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if routine.UserID == primitive.NilObjectID || routine.Name == "" {
		return primitive.NilObjectID, errors.New("routine requires userId and name")
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	routine.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	routine.CreatedAt = now
	routine.UpdatedAt = now
	v.s.routines[routine.ID] = *routine
	return routine.ID, nil
}

func (v routineView) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	r, ok := v.s.routines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := r
	return &out, nil
}

func (v routineView) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []domain.Routine
	for _, r := range v.s.routines {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() > out[j].ID.Hex() })
	return out, nil
}

func (v routineView) Update(ctx context.Context, routine *domain.Routine) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.routines[routine.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = routine.Name
	existing.Description = routine.Description
	existing.UpdatedAt = time.Now().UTC()
	v.s.routines[routine.ID] = existing
	return nil
}

func (v routineView) Delete(ctx context.Context, id primitive.ObjectID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.routines[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.s.routines, id)
	return nil
}

// --- RoutineDayRepository ---

// RoutineDays adapts the store to repository.RoutineDayRepository.
func (s *Store) RoutineDays() repository.RoutineDayRepository { return routineDayView{s} }

type routineDayView struct{ s *Store }

func (v routineDayView) Create(ctx context.Context, day *domain.RoutineDay) (primitive.ObjectID, error) {
	if day.RoutineID == primitive.NilObjectID || day.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("routine day requires routineId and userId")
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	day.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now
	v.s.routineDays[day.ID] = *day
	return day.ID, nil
}

func (v routineDayView) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineDay, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	d, ok := v.s.routineDays[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := d
	return &out, nil
}

func (v routineDayView) GetByRoutineID(ctx context.Context, routineID primitive.ObjectID) ([]domain.RoutineDay, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []domain.RoutineDay
	for _, d := range v.s.routineDays {
		if d.RoutineID == routineID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out, nil
}

func (v routineDayView) Update(ctx context.Context, day *domain.RoutineDay) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.routineDays[day.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Description = day.Description
	existing.Weekdays = day.Weekdays
	existing.UpdatedAt = time.Now().UTC()
	v.s.routineDays[day.ID] = existing
	return nil
}

func (v routineDayView) Delete(ctx context.Context, id primitive.ObjectID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.routineDays[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.s.routineDays, id)
	return nil
}

// --- SessionRepository ---

// Sessions adapts the store to repository.SessionRepository.
func (s *Store) Sessions() repository.SessionRepository { return sessionView{s} }

type sessionView struct{ s *Store }

func (v sessionView) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session requires userId")
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.StartTime.IsZero() {
		session.StartTime = now
	}
	v.s.sessions[session.ID] = *session
	return session.ID, nil
}

func (v sessionView) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	sess, ok := v.s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := sess
	return &out, nil
}

func (v sessionView) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []domain.WorkoutSession
	for _, sess := range v.s.sessions {
		if sess.UserID == userID {
			out = append(out, sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (v sessionView) Update(ctx context.Context, session *domain.WorkoutSession) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.sessions[session.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = session.Name
	existing.Notes = session.Notes
	existing.Impression = session.Impression
	existing.StartTime = session.StartTime
	existing.EndTime = session.EndTime
	existing.UpdatedAt = time.Now().UTC()
	v.s.sessions[session.ID] = existing
	return nil
}

func (v sessionView) Delete(ctx context.Context, id primitive.ObjectID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.s.sessions, id)
	return nil
}

// --- SetGroupRepository ---

// SetGroups adapts the store to repository.SetGroupRepository.
func (s *Store) SetGroups() repository.SetGroupRepository { return setGroupView{s} }

type setGroupView struct{ s *Store }

func (v setGroupView) Create(ctx context.Context, group *domain.SetGroup) (primitive.ObjectID, error) {
	if group.UserID == primitive.NilObjectID || group.Parent.ID == primitive.NilObjectID || group.Parent.Kind == "" {
		return primitive.NilObjectID, errors.New("set group requires userId and a parent reference")
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	group.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now
	v.s.setGroups[group.ID] = *group
	return group.ID, nil
}

func (v setGroupView) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SetGroup, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	g, ok := v.s.setGroups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := g
	return &out, nil
}

func (v setGroupView) GetByParent(ctx context.Context, parent domain.SetGroupParent) ([]domain.SetGroup, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []domain.SetGroup
	for _, g := range v.s.setGroups {
		if g.Parent == parent {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (v setGroupView) Update(ctx context.Context, group *domain.SetGroup) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.setGroups[group.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Type = group.Type
	existing.Comment = group.Comment
	existing.UpdatedAt = time.Now().UTC()
	v.s.setGroups[group.ID] = existing
	return nil
}

func (v setGroupView) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.setGroups[id]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Order = order
	existing.UpdatedAt = time.Now().UTC()
	v.s.setGroups[id] = existing
	return nil
}

func (v setGroupView) Delete(ctx context.Context, id primitive.ObjectID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.setGroups[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.s.setGroups, id)
	return nil
}

func (v setGroupView) DeleteByParent(ctx context.Context, parent domain.SetGroupParent) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for id, g := range v.s.setGroups {
		if g.Parent == parent {
			delete(v.s.setGroups, id)
		}
	}
	return nil
}

// --- SetRepository ---

// Sets adapts the store to repository.SetRepository.
func (s *Store) Sets() repository.SetRepository { return setView{s} }

type setView struct{ s *Store }

func (v setView) Create(ctx context.Context, set *domain.Set) (primitive.ObjectID, error) {
	if set.UserID == primitive.NilObjectID || set.SetGroupID == primitive.NilObjectID || set.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("set requires userId, setGroupId, and exerciseId")
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	set.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	set.CreatedAt = now
	set.UpdatedAt = now
	v.s.sets[set.ID] = *set
	return set.ID, nil
}

func (v setView) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Set, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	st, ok := v.s.sets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := st
	return &out, nil
}

func (v setView) GetByGroupID(ctx context.Context, groupID primitive.ObjectID) ([]domain.Set, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []domain.Set
	for _, st := range v.s.sets {
		if st.SetGroupID == groupID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

func (v setView) CountByGroupID(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var n int64
	for _, st := range v.s.sets {
		if st.SetGroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (v setView) Update(ctx context.Context, set *domain.Set) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.sets[set.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.ExerciseID = set.ExerciseID
	existing.Type = set.Type
	existing.Reps = set.Reps
	existing.RepetitionUnitID = set.RepetitionUnitID
	existing.Weight = set.Weight
	existing.WeightUnitID = set.WeightUnitID
	existing.RestTime = set.RestTime
	existing.Completed = set.Completed
	existing.UpdatedAt = time.Now().UTC()
	v.s.sets[set.ID] = existing
	return nil
}

func (v setView) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	existing, ok := v.s.sets[id]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Order = order
	existing.UpdatedAt = time.Now().UTC()
	v.s.sets[id] = existing
	return nil
}

func (v setView) Delete(ctx context.Context, id primitive.ObjectID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.sets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(v.s.sets, id)
	return nil
}

func (v setView) DeleteByGroupID(ctx context.Context, groupID primitive.ObjectID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for id, st := range v.s.sets {
		if st.SetGroupID == groupID {
			delete(v.s.sets, id)
		}
	}
	return nil
}
