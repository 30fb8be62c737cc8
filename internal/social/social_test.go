package social

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gdg-garage/fittrack-api/internal/database"
	"github.com/gdg-garage/fittrack-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	return NewService(db), db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func ptr[T any](v T) *T { return &v }

func TestPagination_Normalize(t *testing.T) {
	tests := []struct {
		in   Pagination
		want Pagination
	}{
		{Pagination{}, Pagination{Page: 1, Limit: DefaultLimit}},
		{Pagination{Page: -3, Limit: 5}, Pagination{Page: 1, Limit: 5}},
		{Pagination{Page: 2, Limit: 1000}, Pagination{Page: 2, Limit: MaxLimit}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.normalize())
	}

	page := newPage[int](nil, 21, Pagination{Page: 3, Limit: 10})
	assert.Equal(t, 3, page.TotalPages)
	assert.NotNil(t, page.Items)
}

func TestProfiles(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	user := createUser(t, db, "runner@example.com")

	t.Run("UpdateBeforeCreate", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{Bio: ptr("hi")})
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})

	t.Run("UsernameRequired", func(t *testing.T) {
		_, err := svc.CreateProfile(ctx, user.ID, ProfileInput{Username: ptr("  ")})
		assert.ErrorIs(t, err, ErrUsernameRequired)
	})

	t.Run("Create", func(t *testing.T) {
		p, err := svc.CreateProfile(ctx, user.ID, ProfileInput{Username: ptr("runner"), Bio: ptr("Marathons")})
		require.NoError(t, err)
		assert.Equal(t, "runner", p.Username)
		assert.True(t, p.IsPublic)
	})

	t.Run("CreateTwice", func(t *testing.T) {
		_, err := svc.CreateProfile(ctx, user.ID, ProfileInput{Username: ptr("again")})
		assert.ErrorIs(t, err, ErrProfileExists)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		p, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{IsPublic: ptr(false)})
		require.NoError(t, err)
		assert.False(t, p.IsPublic)
		assert.Equal(t, "runner", p.Username)
		assert.Equal(t, "Marathons", p.Bio)
	})

	t.Run("Get", func(t *testing.T) {
		p, err := svc.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, p.User)
		assert.Equal(t, "runner@example.com", p.User.Email)

		_, err = svc.GetProfile(ctx, "missing")
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

func TestPublicAndSearch(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	seed := []struct {
		email, username, bio string
		public               bool
	}{
		{"a@example.com", "TrailRunner", "mountains", true},
		{"b@example.com", "lifter", "Loves RUNNING on weekends", true},
		{"c@example.com", "secret_runner", "hidden", false},
		{"d@example.com", "swimmer", "pool", true},
	}
	for _, s := range seed {
		u := createUser(t, db, s.email)
		_, err := svc.CreateProfile(ctx, u.ID, ProfileInput{Username: ptr(s.username), Bio: ptr(s.bio), IsPublic: ptr(s.public)})
		require.NoError(t, err)
	}

	public, err := svc.PublicProfiles(ctx, Pagination{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), public.Total)
	assert.Equal(t, 2, public.TotalPages)
	assert.Len(t, public.Items, 2)

	second, err := svc.PublicProfiles(ctx, Pagination{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)

	found, err := svc.SearchProfiles(ctx, "runn", Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.Total)
	names := []string{}
	for _, p := range found.Items {
		names = append(names, p.Username)
	}
	assert.ElementsMatch(t, []string{"TrailRunner", "lifter"}, names)

	none, err := svc.SearchProfiles(ctx, "%", Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), none.Total)
	assert.Empty(t, none.Items)
}

func TestFollow(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	carol := createUser(t, db, "carol@example.com")
	dave := createUser(t, db, "dave@example.com")

	_, err := svc.CreateProfile(ctx, alice.ID, ProfileInput{Username: ptr("alice")})
	require.NoError(t, err)
	_, err = svc.CreateProfile(ctx, carol.ID, ProfileInput{Username: ptr("carol"), IsPublic: ptr(false)})
	require.NoError(t, err)

	tests := []struct {
		name        string
		follower    string
		following   string
		expectedErr error
	}{
		{"Self", alice.ID, alice.ID, ErrSelfFollow},
		{"UnknownUser", bob.ID, "nobody", ErrUserNotFound},
		{"PrivateProfile", bob.ID, carol.ID, ErrPrivateProfile},
		{"NoProfile", bob.ID, dave.ID, ErrPrivateProfile},
		{"Success", bob.ID, alice.ID, nil},
		{"AlreadyFollowing", bob.ID, alice.ID, ErrAlreadyFollowing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := svc.Follow(ctx, tt.follower, tt.following)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.follower, f.FollowerID)
			assert.Equal(t, tt.following, f.FollowingID)
		})
	}

	ok, err := svc.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowersAndFollowing(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	star := createUser(t, db, "star@example.com")
	_, err := svc.CreateProfile(ctx, star.ID, ProfileInput{Username: ptr("star")})
	require.NoError(t, err)

	var fans []models.User
	for _, email := range []string{"f1@example.com", "f2@example.com", "f3@example.com"} {
		fan := createUser(t, db, email)
		_, err := svc.CreateProfile(ctx, fan.ID, ProfileInput{Username: ptr(email[:2])})
		require.NoError(t, err)
		_, err = svc.Follow(ctx, fan.ID, star.ID)
		require.NoError(t, err)
		fans = append(fans, fan)
	}

	followers, err := svc.Followers(ctx, star.ID, Pagination{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), followers.Total)
	assert.Equal(t, 2, followers.TotalPages)
	require.Len(t, followers.Items, 2)
	require.NotNil(t, followers.Items[0].Follower)
	require.NotNil(t, followers.Items[0].Follower.Profile)
	assert.Equal(t, "f3", followers.Items[0].Follower.Profile.Username)

	following, err := svc.Following(ctx, fans[0].ID, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), following.Total)
	require.Len(t, following.Items, 1)
	require.NotNil(t, following.Items[0].Following)
	assert.Equal(t, star.ID, following.Items[0].Following.ID)

	require.NoError(t, svc.Unfollow(ctx, fans[0].ID, star.ID))
	assert.ErrorIs(t, svc.Unfollow(ctx, fans[0].ID, star.ID), ErrNotFollowing)

	followers, err = svc.Followers(ctx, star.ID, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers.Total)
}

func TestPublicListingsHideNotificationSettings(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	user := models.User{Email: "dm@example.com", PasswordHash: "x", MealReminders: true, DiscordUserID: "987654321"}
	require.NoError(t, db.Create(&user).Error)
	_, err := svc.CreateProfile(ctx, user.ID, ProfileInput{Username: ptr("dm")})
	require.NoError(t, err)

	fan := createUser(t, db, "fan@example.com")
	_, err = svc.Follow(ctx, user.ID, fan.ID)
	require.ErrorIs(t, err, ErrPrivateProfile)
	_, err = svc.CreateProfile(ctx, fan.ID, ProfileInput{Username: ptr("fan")})
	require.NoError(t, err)
	_, err = svc.Follow(ctx, user.ID, fan.ID)
	require.NoError(t, err)

	public, err := svc.PublicProfiles(ctx, Pagination{})
	require.NoError(t, err)
	followers, err := svc.Followers(ctx, fan.ID, Pagination{})
	require.NoError(t, err)
	require.Len(t, followers.Items, 1)

	for _, v := range []any{public, followers} {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		body := string(raw)
		assert.Contains(t, body, "dm@example.com")
		assert.NotContains(t, body, "987654321")
		assert.NotContains(t, body, "discordUserId")
		assert.NotContains(t, body, "mealReminders")
	}
}
