package user

import (
	"context"
	"errors"
	"testing"
)

type fakeUserRepo struct {
	users  map[uint]*User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*User)}
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id uint) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) UserWithEmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) UserWithUsernameExists(ctx context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *User) error {
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id uint) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func registerInput() RegisterInput {
	return RegisterInput{
		FirstName: "Paige",
		LastName:  "Pierce",
		Email:     "paige@example.com",
		Username:  "paige",
		Password:  "hunter22",
	}
}

func TestRegisterSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, plainHasher{})

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash != "hashed:hunter22" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}
}

func TestRegisterConflicts(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		want   error
	}{
		{name: "same email", mutate: func(in *RegisterInput) { in.Username = "other" }, want: ErrEmailTaken},
		{name: "same username", mutate: func(in *RegisterInput) { in.Email = "other@example.com" }, want: ErrUsernameTaken},
		{name: "both", mutate: func(in *RegisterInput) {}, want: ErrUsernameTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(newFakeUserRepo(), plainHasher{})
			if _, err := svc.Register(context.Background(), registerInput()); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			input := registerInput()
			tc.mutate(&input)
			_, err := svc.Register(context.Background(), input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestUpdateUserEmailTakenByOther(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, plainHasher{})

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second := registerInput()
	second.Email = "eagle@example.com"
	second.Username = "eagle"
	other, err := svc.Register(context.Background(), second)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = svc.UpdateUser(context.Background(), other.ID, UpdateInput{FirstName: "E", LastName: "M", Email: "paige@example.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	updated, err := svc.UpdateUser(context.Background(), other.ID, UpdateInput{FirstName: "Eagle", LastName: "McMahon", Email: "eagle@example.com"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.FirstName != "Eagle" || updated.Username != "eagle" {
		t.Fatalf("unexpected user %+v", updated)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	svc := NewService(newFakeUserRepo(), plainHasher{})
	_, err := svc.UpdateUser(context.Background(), 9, UpdateInput{Email: "x@example.com"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeUserRepo(), plainHasher{})
	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "paige@example.com", "hunter22")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "paige" {
		t.Fatalf("expected paige, got %q", user.Username)
	}

	if _, err := svc.Authenticate(context.Background(), "paige@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc := NewService(newFakeUserRepo(), plainHasher{})
	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
