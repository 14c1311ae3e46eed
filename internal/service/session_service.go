package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"liftlog/workout-app/internal/domain"
	"liftlog/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionCreateInput carries the caller-supplied fields of a session
// creation. When TemplateID is set the session is instantiated from that
// routine day; Name falls back to the day's description.
type SessionCreateInput struct {
	TemplateID *primitive.ObjectID
	Name       *string
	Notes      *string
	StartTime  *time.Time
}

// SessionUpdateInput carries a partial session update. Setting EndTime
// finishes the session; Impression must be within 1..5.
type SessionUpdateInput struct {
	Name       *string
	Notes      *string
	Impression *int
	StartTime  *time.Time
	EndTime    *time.Time
}

// SessionAggregate is a session together with its ordered groups and sets.
type SessionAggregate struct {
	Session domain.WorkoutSession `json:"session"`
	Groups  []SetGroupAggregate   `json:"groups"`
}

// --- Service Interface ---
type SessionService interface {
	Create(ctx context.Context, userID primitive.ObjectID, input SessionCreateInput) (*SessionAggregate, error)
	Get(ctx context.Context, userID, sessionID primitive.ObjectID) (*SessionAggregate, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error)
	Update(ctx context.Context, userID, sessionID primitive.ObjectID, input SessionUpdateInput) (*domain.WorkoutSession, error)
	Delete(ctx context.Context, userID, sessionID primitive.ObjectID) error
}

// --- Service Implementation ---

type sessionService struct {
	sessions    repository.SessionRepository
	routineDays repository.RoutineDayRepository
	setGroups   repository.SetGroupRepository
	sets        repository.SetRepository
	tx          repository.TxManager
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	sessions repository.SessionRepository,
	routineDays repository.RoutineDayRepository,
	setGroups repository.SetGroupRepository,
	sets repository.SetRepository,
	tx repository.TxManager,
) SessionService {
	return &sessionService{
		sessions:    sessions,
		routineDays: routineDays,
		setGroups:   setGroups,
		sets:        sets,
		tx:          tx,
	}
}

// Create starts a new workout session. Without a template it is an empty
// session built from the input alone. With a template it is an ordered,
// depth-2 copy of the routine day's group/set tree: group and set order is
// re-derived from iteration position (template gaps do not propagate),
// exercise/unit/rep/weight/rest selections are copied verbatim, and every
// cloned set starts completed=false regardless of the general completion
// policy, since a fresh session is active by definition.
func (s *sessionService) Create(ctx context.Context, userID primitive.ObjectID, input SessionCreateInput) (*SessionAggregate, error) {
	var aggregate *SessionAggregate
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session := &domain.WorkoutSession{UserID: userID}
		if input.Name != nil {
			session.Name = strings.TrimSpace(*input.Name)
		}
		if input.Notes != nil {
			session.Notes = *input.Notes
		}
		if input.StartTime != nil {
			session.StartTime = *input.StartTime
		}

		if input.TemplateID == nil {
			if _, err := s.sessions.Create(ctx, session); err != nil {
				return err
			}
			aggregate = &SessionAggregate{Session: *session, Groups: []SetGroupAggregate{}}
			return nil
		}

		day, err := s.routineDays.GetByID(ctx, *input.TemplateID)
		if err != nil {
			return orNotFound(err, ErrRoutineDayNotFound)
		}
		if err := assertOwned(day.UserID, userID); err != nil {
			return err
		}

		// The template description is the fallback display name.
		if session.Name == "" {
			session.Name = day.Description
		}
		session.TemplateID = &day.ID

		if _, err := s.sessions.Create(ctx, session); err != nil {
			return err
		}

		templateGroups, err := s.setGroups.GetByParent(ctx, domain.TemplateParent(day.ID))
		if err != nil {
			return err
		}

		groups := make([]SetGroupAggregate, 0, len(templateGroups))
		for position, templateGroup := range templateGroups {
			group := &domain.SetGroup{
				UserID:  userID,
				Parent:  domain.SessionParent(session.ID),
				Type:    templateGroup.Type,
				Order:   position,
				Comment: templateGroup.Comment,
			}
			if _, err := s.setGroups.Create(ctx, group); err != nil {
				return err
			}

			templateSets, err := s.sets.GetByGroupID(ctx, templateGroup.ID)
			if err != nil {
				return err
			}
			sets := make([]domain.Set, 0, len(templateSets))
			for setPosition, templateSet := range templateSets {
				set := &domain.Set{
					UserID:           userID,
					SetGroupID:       group.ID,
					ExerciseID:       templateSet.ExerciseID,
					Type:             templateSet.Type,
					Order:            setPosition,
					Reps:             templateSet.Reps,
					RepetitionUnitID: templateSet.RepetitionUnitID,
					Weight:           templateSet.Weight,
					WeightUnitID:     templateSet.WeightUnitID,
					RestTime:         templateSet.RestTime,
					Completed:        false, // always fresh, even if the policy would say otherwise
				}
				if _, err := s.sets.Create(ctx, set); err != nil {
					return err
				}
				sets = append(sets, *set)
			}
			groups = append(groups, SetGroupAggregate{Group: *group, Sets: sets})
		}

		aggregate = &SessionAggregate{Session: *session, Groups: groups}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return aggregate, nil
}

// Get returns a session with its groups and sets in order.
func (s *sessionService) Get(ctx context.Context, userID, sessionID primitive.ObjectID) (*SessionAggregate, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, orNotFound(err, ErrSessionNotFound)
	}
	if err := assertOwned(session.UserID, userID); err != nil {
		return nil, err
	}

	groups, err := s.setGroups.GetByParent(ctx, domain.SessionParent(session.ID))
	if err != nil {
		return nil, err
	}
	aggregate := &SessionAggregate{Session: *session, Groups: make([]SetGroupAggregate, 0, len(groups))}
	for _, group := range groups {
		sets, err := s.sets.GetByGroupID(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		aggregate.Groups = append(aggregate.Groups, SetGroupAggregate{Group: group, Sets: sets})
	}
	return aggregate, nil
}

// List returns the user's sessions, most recent first.
func (s *sessionService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	return s.sessions.GetByUserID(ctx, userID)
}

// Update applies a partial update to a session.
func (s *sessionService) Update(ctx context.Context, userID, sessionID primitive.ObjectID, input SessionUpdateInput) (*domain.WorkoutSession, error) {
	if input.Impression != nil && (*input.Impression < 1 || *input.Impression > 5) {
		return nil, fmt.Errorf("impression must be between 1 and 5: %w", ErrValidationFailed)
	}

	var updated *domain.WorkoutSession
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.sessions.GetByID(ctx, sessionID)
		if err != nil {
			return orNotFound(err, ErrSessionNotFound)
		}
		if err := assertOwned(session.UserID, userID); err != nil {
			return err
		}

		if input.Name != nil {
			session.Name = strings.TrimSpace(*input.Name)
		}
		if input.Notes != nil {
			session.Notes = *input.Notes
		}
		if input.Impression != nil {
			session.Impression = input.Impression
		}
		if input.StartTime != nil {
			session.StartTime = *input.StartTime
		}
		if input.EndTime != nil {
			session.EndTime = input.EndTime
		}

		if err := s.sessions.Update(ctx, session); err != nil {
			return orNotFound(err, ErrSessionNotFound)
		}
		updated = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a session with all of its groups and sets in one
// transaction.
func (s *sessionService) Delete(ctx context.Context, userID, sessionID primitive.ObjectID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.sessions.GetByID(ctx, sessionID)
		if err != nil {
			return orNotFound(err, ErrSessionNotFound)
		}
		if err := assertOwned(session.UserID, userID); err != nil {
			return err
		}

		if err := deleteGroupsUnder(ctx, s.setGroups, s.sets, domain.SessionParent(session.ID)); err != nil {
			return err
		}
		return s.sessions.Delete(ctx, session.ID)
	})
}
