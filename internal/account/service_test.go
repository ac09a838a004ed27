package account

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yumexpress-be/internal/apperr"
	"yumexpress-be/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a Account) (Account, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(Account), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, role Role, email string) (Account, error) {
	args := m.Called(ctx, role, email)
	return args.Get(0).(Account), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, role Role, id uuid.UUID) (Account, error) {
	args := m.Called(ctx, role, id)
	return args.Get(0).(Account), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, role Role, id uuid.UUID, p UpdateProfileParams) (Account, error) {
	args := m.Called(ctx, role, id, p)
	return args.Get(0).(Account), args.Error(1)
}

func newTestService(t *testing.T, repo Repository) Service {
	tokens, err := auth.NewTokenManager("testsecret", 0)
	require.NoError(t, err)
	return NewService(repo, tokens)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByEmail", ctx, RoleUser, "john@example.com").Return(Account{}, ErrAccountNotFound)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(a Account) bool {
			return a.Email == "john@example.com" &&
				a.Role == RoleUser &&
				a.Password != "password123" &&
				auth.CheckPasswordHash("password123", a.Password)
		})).Return(Account{ID: uuid.New(), Name: "John", Email: "john@example.com", Role: RoleUser}, nil)

		a, err := svc.Register(ctx, RegisterInput{Name: "John", Email: " John@Example.com ", Password: "password123", Role: "USER"})
		assert.NoError(t, err)
		assert.Equal(t, RoleUser, a.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc := newTestService(t, new(MockRepository))

		_, err := svc.Register(ctx, RegisterInput{Email: "john@example.com", Password: "x", Role: "user"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("Invalid Role", func(t *testing.T) {
		svc := newTestService(t, new(MockRepository))

		_, err := svc.Register(ctx, RegisterInput{Name: "John", Email: "john@example.com", Password: "x", Role: "admin"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("Duplicate Email Same Role", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByEmail", ctx, RoleUser, "john@example.com").Return(Account{ID: uuid.New()}, nil)

		_, err := svc.Register(ctx, RegisterInput{Name: "John", Email: "john@example.com", Password: "x", Role: "user"})
		assert.ErrorIs(t, err, apperr.ErrConflict)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Email Race Detected By Constraint", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByEmail", ctx, RoleUser, "john@example.com").Return(Account{}, ErrAccountNotFound)
		mockRepo.On("Create", ctx, mock.Anything).Return(Account{}, ErrEmailTaken)

		_, err := svc.Register(ctx, RegisterInput{Name: "John", Email: "john@example.com", Password: "x", Role: "user"})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	// The same email may exist once per role table; only the target table is checked.
	t.Run("Same Email Across Roles Is Allowed", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByEmail", ctx, RoleRestaurant, "john@example.com").Return(Account{}, ErrAccountNotFound)
		mockRepo.On("Create", ctx, mock.Anything).Return(Account{ID: uuid.New(), Role: RoleRestaurant}, nil)

		_, err := svc.Register(ctx, RegisterInput{Name: "John's", Email: "john@example.com", Password: "x", Role: "restaurant"})
		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "FindByEmail", ctx, RoleUser, "john@example.com")
	})

	t.Run("Lookup Failure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByEmail", ctx, RoleUser, "john@example.com").Return(Account{}, errors.New("db down"))

		_, err := svc.Register(ctx, RegisterInput{Name: "John", Email: "john@example.com", Password: "x", Role: "user"})
		assert.EqualError(t, err, "db down")
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := Account{ID: uuid.New(), Email: "john@example.com", Password: hash, Role: RoleUser}
	restaurant := Account{ID: uuid.New(), Email: "luigi@example.com", Password: hash, Role: RoleRestaurant}

	t.Run("User Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByEmail", ctx, RoleUser, user.Email).Return(user, nil)

		res, err := svc.Login(ctx, user.Email, "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, user.ID, res.Account.ID)
		mockRepo.AssertNotCalled(t, "FindByEmail", ctx, RoleRestaurant, user.Email)
	})

	t.Run("Falls Back To Restaurant", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByEmail", ctx, RoleUser, restaurant.Email).Return(Account{}, ErrAccountNotFound)
		mockRepo.On("FindByEmail", ctx, RoleRestaurant, restaurant.Email).Return(restaurant, nil)

		res, err := svc.Login(ctx, restaurant.Email, "password123")
		require.NoError(t, err)

		tokens, _ := auth.NewTokenManager("testsecret", 0)
		id, err := tokens.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, restaurant.ID.String(), id.ID)
		assert.Equal(t, "restaurant", id.Role)
	})

	t.Run("Unknown Email And Wrong Password Are Indistinguishable", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByEmail", ctx, RoleUser, "ghost@example.com").Return(Account{}, ErrAccountNotFound)
		mockRepo.On("FindByEmail", ctx, RoleRestaurant, "ghost@example.com").Return(Account{}, ErrAccountNotFound)
		mockRepo.On("FindByEmail", ctx, RoleUser, user.Email).Return(user, nil)

		_, unknownErr := svc.Login(ctx, "ghost@example.com", "password123")
		_, wrongErr := svc.Login(ctx, user.Email, "wrong")

		assert.ErrorIs(t, unknownErr, apperr.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, apperr.ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("Unknown Email Still Compares A Hash", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo).(*service)

		var compared []string
		svc.checkPassword = func(password, hash string) bool {
			compared = append(compared, hash)
			return auth.CheckPasswordHash(password, hash)
		}

		mockRepo.On("FindByEmail", ctx, RoleUser, "ghost@example.com").Return(Account{}, ErrAccountNotFound)
		mockRepo.On("FindByEmail", ctx, RoleRestaurant, "ghost@example.com").Return(Account{}, ErrAccountNotFound)
		mockRepo.On("FindByEmail", ctx, RoleUser, user.Email).Return(user, nil)

		_, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
		_, err = svc.Login(ctx, user.Email, "wrong")
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

		require.Len(t, compared, 2)
		assert.Equal(t, dummyHash(), compared[0])
		assert.Equal(t, user.Password, compared[1])
		assert.True(t, strings.HasPrefix(compared[0], "$2a$"))
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc := newTestService(t, new(MockRepository))

		_, err := svc.Login(ctx, "", "x")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("Store Failure Is Not Masked", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByEmail", ctx, RoleUser, user.Email).Return(Account{}, errors.New("db down"))

		_, err := svc.Login(ctx, user.Email, "password123")
		assert.EqualError(t, err, "db down")
	})
}

func TestService_Profile(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("FindByID", ctx, RoleUser, id).Return(Account{ID: id, Name: "John"}, nil)

		a, err := svc.Profile(ctx, RoleUser, id.String())
		assert.NoError(t, err)
		assert.Equal(t, "John", a.Name)
	})

	t.Run("Malformed ID", func(t *testing.T) {
		svc := newTestService(t, new(MockRepository))

		_, err := svc.Profile(ctx, RoleUser, "not-a-uuid")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("Normalizes And Hashes", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		email := " New@Example.com "
		password := "newpass"
		mockRepo.On("UpdateProfile", ctx, RoleUser, id, mock.MatchedBy(func(p UpdateProfileParams) bool {
			return *p.Email == "new@example.com" && auth.CheckPasswordHash("newpass", *p.Password)
		})).Return(Account{ID: id, Email: "new@example.com"}, nil)

		a, err := svc.UpdateProfile(ctx, RoleUser, id.String(), UpdateProfileParams{Email: &email, Password: &password})
		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", a.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Name", func(t *testing.T) {
		svc := newTestService(t, new(MockRepository))
		blank := "  "

		_, err := svc.UpdateProfile(ctx, RoleUser, id.String(), UpdateProfileParams{Name: &blank})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("Account Gone", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(t, mockRepo)

		mockRepo.On("UpdateProfile", ctx, RoleRestaurant, id, mock.Anything).Return(Account{}, ErrAccountNotFound)

		_, err := svc.UpdateProfile(ctx, RoleRestaurant, id.String(), UpdateProfileParams{})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
