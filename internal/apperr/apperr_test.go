package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("start quest: %w", NotFound("quests.Start", EntityQuest, "q-1"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFoundEntity(err, EntityQuest))
	assert.False(t, IsNotFoundEntity(err, EntityUser))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, EntityQuest, EntityOf(err))
}

func TestTransient(t *testing.T) {
	cause := errors.New("connection reset")
	err := Transient("users.Get", EntityUser, cause)

	assert.True(t, errors.Is(err, ErrTransient))
	assert.True(t, errors.Is(err, cause))
	assert.Nil(t, Transient("noop", EntityUser, nil))

	typed := New(KindLimitExceeded, "quests.Start", "too many")
	assert.Same(t, typed, Transient("wrap", EntityQuest, typed))
}

func TestKindOfUntyped(t *testing.T) {
	assert.Equal(t, KindTransient, KindOf(errors.New("plain")))
	assert.Equal(t, "", EntityOf(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"kind only", &Error{Kind: KindAlreadyOwned}, "already_owned"},
		{"op and message", New(KindDeadlineExpired, "quests.Complete", "deadline passed"), "quests.Complete: deadline passed"},
		{"wrapped", &Error{Kind: KindTransient, Op: "op", Message: "store failure", Err: errors.New("eof")}, "op: store failure: eof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
