package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bloglist/internal/auth"
	"bloglist/internal/domain"
)

var userTestSecret = []byte("secret")

func newTestUserService(users *memoryUsers, blogs *memoryBlogs) UserService {
	svc := NewUserService(users, blogs, auth.NewVerifier(userTestSecret, nil), time.Hour)
	svc.(*userService).hashCost = bcrypt.MinCost
	return svc
}

func TestRegisterHashesPassword(t *testing.T) {
	users := newMemoryUsers()
	svc := newTestUserService(users, newMemoryBlogs(users))

	user, err := svc.Register(context.Background(), "root", "Superuser", "sekret")
	require.NoError(t, err)
	require.Equal(t, "root", user.Username)
	require.Empty(t, user.PasswordHash)
	require.Equal(t, []string{}, user.BlogIDs)

	stored, err := users.GetByUsername(context.Background(), "root")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("sekret")))
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	users := newMemoryUsers()
	svc := newTestUserService(users, newMemoryBlogs(users))
	ctx := context.Background()

	_, err := svc.Register(ctx, "root", "Superuser", "sekret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "root", "Another", "sekret")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
	require.Contains(t, err.Error(), "unique")

	n, err := users.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRegisterValidation(t *testing.T) {
	users := newMemoryUsers()
	svc := newTestUserService(users, newMemoryBlogs(users))

	cases := [][2]string{{"", "sekret"}, {"ro", "sekret"}, {"root", ""}, {"root", "pw"}}
	for _, c := range cases {
		_, err := svc.Register(context.Background(), c[0], "", c[1])
		require.ErrorIs(t, err, ErrValidation, c)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	users := newMemoryUsers()
	svc := newTestUserService(users, newMemoryBlogs(users))
	ctx := context.Background()

	registered, err := svc.Register(ctx, "root", "Superuser", "sekret")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "root", "sekret")
	require.NoError(t, err)
	require.Equal(t, "Superuser", res.Name)

	claim, err := auth.Verify("Bearer "+res.Token, userTestSecret, time.Now())
	require.NoError(t, err)
	require.Equal(t, registered.ID, claim.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newMemoryUsers()
	svc := newTestUserService(users, newMemoryBlogs(users))
	ctx := context.Background()

	_, err := svc.Register(ctx, "root", "Superuser", "sekret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "root", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody", "sekret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestListPopulatesExistingBlogs(t *testing.T) {
	users := newMemoryUsers()
	blogs := newMemoryBlogs(users)
	svc := newTestUserService(users, blogs)
	ctx := context.Background()

	user, err := svc.Register(ctx, "root", "Superuser", "sekret")
	require.NoError(t, err)

	var ids []string
	for _, title := range []string{"one", "two"} {
		id, err := blogs.Create(ctx, &domain.Blog{Title: title, URL: "https://example.com", UserID: user.ID})
		require.NoError(t, err)
		require.NoError(t, users.AppendBlog(ctx, user.ID, id))
		ids = append(ids, id)
	}
	require.NoError(t, blogs.Delete(ctx, ids[0]))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, ids, list[0].BlogIDs)
	require.Len(t, list[0].Blogs, 1)
	require.Equal(t, "two", list[0].Blogs[0].Title)
	require.Empty(t, list[0].PasswordHash)
}
