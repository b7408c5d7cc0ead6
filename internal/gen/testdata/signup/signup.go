package signup

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a fixture for named basic types.
type Plan string

// Signup exercises every field shape the generator supports.
type Signup struct {
	Name      string    `form:"name"`
	Email     *string   `form:"email"`
	Age       int       `form:"age,optional"`
	Active    bool      `form:"active,optional"`
	Score     float64   `form:"score,optional"`
	Plan      Plan      `form:"plan,optional"`
	ID        uuid.UUID `form:"id,optional"`
	Born      time.Time `form:"born,layout:2006-01-02"`
	Bio       string    `form:"bio,sanitize"`
	Interests []string  `form:"interests"`
	Tags      []string  `form:"tags,required"`
	Internal  string    `form:"-"`
	Username  string
}

// Bad carries a field shape the generator rejects.
type Bad struct {
	Attrs map[string]string `form:"attrs"`
}
