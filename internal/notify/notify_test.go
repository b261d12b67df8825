package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolists/internal/errs"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	OK(&r, "Created todo list \"Groceries\"")
	Fail(&r, &errs.Error{Kind: errs.ServerRejection, Msg: "name can't be blank"})
	Fail(&r, errors.New("boom"))

	require.Len(t, r.All(), 3)
	assert.Equal(t, []Notification{
		{Severity: Error, Text: "name can't be blank"},
		{Severity: Error, Text: "boom"},
	}, r.Errors())

	r.Reset()
	assert.Empty(t, r.All())
}

func TestFunc(t *testing.T) {
	var got Notification
	s := Func(func(n Notification) { got = n })
	OK(s, "done")
	assert.Equal(t, Notification{Severity: Success, Text: "done"}, got)
	assert.Equal(t, "success", got.Severity.String())
	assert.Equal(t, "error", Error.String())
}

func TestToast_ShowAndExpire(t *testing.T) {
	toast := NewToast(0, WithoutTimer())
	assert.Equal(t, DefaultDelay, toast.Delay())
	assert.False(t, toast.Visible())
	assert.True(t, toast.Node().HasClass("notice"))

	toast.Notify(Notification{Severity: Error, Text: "offline"})
	first := toast.Seq()
	assert.True(t, toast.Visible())
	assert.Equal(t, "offline", toast.Node().Text())
	assert.True(t, toast.Node().HasClass("notice-error"))

	toast.Notify(Notification{Severity: Success, Text: "saved"})
	assert.False(t, toast.Node().HasClass("notice-error"))
	assert.True(t, toast.Node().HasClass("notice-success"))

	// The first message's window no longer applies.
	assert.False(t, toast.Expire(first))
	assert.True(t, toast.Visible())

	assert.True(t, toast.Expire(toast.Seq()))
	assert.False(t, toast.Visible())
	assert.Equal(t, "saved", toast.Current().Text)
}

func TestToast_TimerHides(t *testing.T) {
	toast := NewToast(10 * time.Millisecond)
	toast.Notify(Notification{Text: "hello"})
	assert.True(t, toast.Visible())
	assert.Eventually(t, func() bool { return !toast.Visible() }, time.Second, 5*time.Millisecond)
}
