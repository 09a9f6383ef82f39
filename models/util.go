package models

// ContextKey is a string type used in context.WithValue
type ContextKey string

func (c ContextKey) String() string {
	return string(c)
}

// Context keys set by the auth middleware. Services read identity from
// these only; identity fields in request bodies are never trusted.
const (
	CtxUserID    ContextKey = "user_id"
	CtxStaffID   ContextKey = "staff_id"
	CtxRole      ContextKey = "role"
	CtxActorType ContextKey = "actor_type"
)
