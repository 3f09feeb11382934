package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kindred-app/kindred/internal/apperror"
	"github.com/kindred-app/kindred/internal/sanitize"
	"github.com/kindred-app/kindred/internal/users"
)

// peopleCacheKey is the Redis key holding the serialized people feed.
const peopleCacheKey = "people:feed"

// peopleCacheTTL is how long the people feed stays cached. Short on
// purpose: the feed is the hottest read and mild staleness is invisible.
const peopleCacheTTL = 30 * time.Second

// peopleLimit caps the people feed and the match candidate pool.
const peopleLimit = 50

// ProfileService defines the business logic contract for profiles.
type ProfileService interface {
	Upsert(ctx context.Context, userID string, req UpsertRequest) (*Profile, error)
	GetByHandle(ctx context.Context, handle string) (*Person, error)
	People(ctx context.Context) ([]Person, error)
	Matches(ctx context.Context, userID string) ([]Person, error)
}

// profileService implements ProfileService with a Redis-cached feed.
type profileService struct {
	repo  ProfileRepository
	users users.UserService
	redis *redis.Client
}

// NewProfileService creates a new profile service with the given dependencies.
func NewProfileService(repo ProfileRepository, userSvc users.UserService, rdb *redis.Client) ProfileService {
	return &profileService{
		repo:  repo,
		users: userSvc,
		redis: rdb,
	}
}

// Upsert creates or replaces the caller's profile. Free-text fields are
// sanitized before storage so stored content is safe to echo to any client.
func (s *profileService) Upsert(ctx context.Context, userID string, req UpsertRequest) (*Profile, error) {
	hobbies := make([]string, 0, len(req.Hobbies))
	for _, h := range req.Hobbies {
		if h = sanitize.Text(h); h != "" {
			hobbies = append(hobbies, h)
		}
	}

	profile := &Profile{
		UserID:    userID,
		Bio:       sanitize.Text(req.Bio),
		Website:   strings.TrimSpace(req.Website),
		Location:  sanitize.Text(req.Location),
		Hobbies:   hobbies,
		Age:       req.Age,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("saving profile: %w", err))
	}

	// The feed now shows stale profile data until the cache expires;
	// dropping the key narrows that window to a single request.
	if err := s.redis.Del(ctx, peopleCacheKey).Err(); err != nil {
		slog.Warn("failed to invalidate people feed cache", slog.Any("error", err))
	}

	slog.Info("profile updated", slog.String("user_id", userID))

	return profile, nil
}

// GetByHandle resolves a user by handle and returns their public profile
// view. A user without a profile yields not found, matching the original
// API ("There is no profile for this user").
func (s *profileService) GetByHandle(ctx context.Context, handle string) (*Person, error) {
	user, err := s.users.GetByHandle(ctx, handle)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewFieldError(404, "handle", "There is no profile for this user")
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user by handle: %w", err))
	}

	profile, err := s.repo.FindByUserID(ctx, user.ID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewFieldError(404, "profile", "There is no profile for this user")
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding profile: %w", err))
	}

	return &Person{
		ID:       user.ID,
		Name:     user.Name,
		Handle:   user.Handle,
		Avatar:   user.Avatar,
		Bio:      profile.Bio,
		Website:  profile.Website,
		Location: profile.Location,
		Hobbies:  profile.Hobbies,
		Age:      profile.Age,
	}, nil
}

// People returns the public feed of recent users with their profiles,
// served from the Redis cache when warm. Cache failures fall back to the
// database -- the feed must not depend on Redis being up.
func (s *profileService) People(ctx context.Context) ([]Person, error) {
	if data, err := s.redis.Get(ctx, peopleCacheKey).Bytes(); err == nil {
		var people []Person
		if err := json.Unmarshal(data, &people); err == nil {
			return people, nil
		}
		// Corrupt cache entry: fall through and rebuild it.
	}

	people, err := s.repo.ListPeople(ctx, peopleLimit)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing people: %w", err))
	}

	if data, err := json.Marshal(people); err == nil {
		if err := s.redis.Set(ctx, peopleCacheKey, data, peopleCacheTTL).Err(); err != nil {
			slog.Warn("failed to cache people feed", slog.Any("error", err))
		}
	}

	return people, nil
}

// Matches returns people sharing at least one hobby and the same age
// bracket with the caller. Requires the caller to have a profile with
// hobbies; matching against an empty profile would return everyone.
func (s *profileService) Matches(ctx context.Context, userID string) ([]Person, error) {
	own, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewFieldError(400, "profile", "Create a profile with hobbies to see matches")
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding own profile: %w", err))
	}
	if len(own.Hobbies) == 0 {
		return nil, apperror.NewFieldError(400, "hobbies", "Add hobbies to your profile to see matches")
	}

	candidates, err := s.repo.ListPeople(ctx, peopleLimit)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing candidates: %w", err))
	}

	ownHobbies := hobbySet(own.Hobbies)
	matches := make([]Person, 0)
	for _, candidate := range candidates {
		if candidate.ID == userID {
			continue
		}
		if ageBracket(candidate.Age) != ageBracket(own.Age) {
			continue
		}
		if sharesHobby(ownHobbies, candidate.Hobbies) {
			matches = append(matches, candidate)
		}
	}

	return matches, nil
}

// hobbySet folds a hobby list into a lowercase lookup set.
func hobbySet(hobbies []string) map[string]bool {
	set := make(map[string]bool, len(hobbies))
	for _, h := range hobbies {
		set[strings.ToLower(strings.TrimSpace(h))] = true
	}
	return set
}

// sharesHobby reports whether any candidate hobby appears in the set.
func sharesHobby(set map[string]bool, hobbies []string) bool {
	for _, h := range hobbies {
		if set[strings.ToLower(strings.TrimSpace(h))] {
			return true
		}
	}
	return false
}

// ageBracket maps an age to a coarse bracket for matching. Zero (age not
// set) gets its own bracket so unset ages only match other unset ages.
func ageBracket(age int) int {
	switch {
	case age <= 0:
		return 0
	case age < 25:
		return 1
	case age < 35:
		return 2
	case age < 45:
		return 3
	case age < 55:
		return 4
	default:
		return 5
	}
}
