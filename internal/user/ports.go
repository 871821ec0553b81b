package user

import "context"

const (
	StatusFree    = "free"
	StatusPremium = "premium"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Status   string `json:"status"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

// UpdateInput — явный список полей, которые можно менять.
// nil — поле не трогаем.
type UpdateInput struct {
	ID       int64
	Username *string
	Status   *string
	Name     *string
	Age      *int
	Gender   *string
}

// Repo — работа с БД
type Repo interface {
	Get(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, in UpdateInput) (*User, error)
}

// Service — бизнес-операции
type Service interface {
	Get(ctx context.Context, id int64) (*User, error)
	GetOrCreate(ctx context.Context, id int64, username string) (*User, error)
	Update(ctx context.Context, in UpdateInput) (*User, error)
	ToggleStatus(ctx context.Context, id int64) (string, error)
}
