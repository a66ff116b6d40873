package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/pr-gatekeeper/internal/core"
	"github.com/sevigo/pr-gatekeeper/mocks"
)

func newCommentEvent(t *testing.T, commenter, prAuthor string) *core.Event {
	t.Helper()
	payload := `{
		"action": "created",
		"issue": {"number": 9, "user": {"login": "` + prAuthor + `"}, "pull_request": {}},
		"comment": {"body": "/cmd", "user": {"login": "` + commenter + `"}},
		"repository": {"full_name": "acme/widgets"}
	}`
	ev, err := core.NewEvent("issue_comment", "", []byte(payload))
	require.NoError(t, err)
	return ev
}

func TestWhitelistAdd_AddsCommentAuthor(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate := mocks.NewMockGate(ctrl)
	ev := newCommentEvent(t, "alice", "bob")

	gate.EXPECT().AddUserToUserList(gomock.Any(), "alice").Return(true, nil)

	err := newWhitelistAdd(discardLogger()).Process(context.Background(), ev, gate)
	assert.NoError(t, err)
}

func TestWhitelistAdd_PropagatesStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate := mocks.NewMockGate(ctrl)
	ev := newCommentEvent(t, "alice", "bob")
	diskFull := errors.New("no space left on device")

	gate.EXPECT().AddUserToUserList(gomock.Any(), "alice").Return(false, diskFull)

	err := newWhitelistAdd(discardLogger()).Process(context.Background(), ev, gate)
	assert.ErrorIs(t, err, diskFull)
}

func TestWhitelistAdd_MalformedEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	gate := mocks.NewMockGate(ctrl)
	ev, err := core.NewEvent("issue_comment", "", []byte(`{"comment": {"body": "/approve"}}`))
	require.NoError(t, err)

	err = newWhitelistAdd(discardLogger()).Process(context.Background(), ev, gate)
	assert.ErrorIs(t, err, core.ErrMalformedEvent)
}

func TestAddUser(t *testing.T) {
	t.Run("admin adds author and triggers build", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gate := mocks.NewMockGate(ctrl)
		ev := newCommentEvent(t, "root", "bob")

		gomock.InOrder(
			gate.EXPECT().IsUserOnAdminList(gomock.Any(), "root").Return(true, nil),
			gate.EXPECT().AddUserToUserList(gomock.Any(), "bob").Return(true, nil),
			gate.EXPECT().TriggerBuild(gomock.Any(), ev).Return(nil),
		)

		assert.NoError(t, newAddUser(discardLogger()).Process(context.Background(), ev, gate))
	})

	t.Run("author already listed does not trigger again", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gate := mocks.NewMockGate(ctrl)
		ev := newCommentEvent(t, "root", "bob")

		gate.EXPECT().IsUserOnAdminList(gomock.Any(), "root").Return(true, nil)
		gate.EXPECT().AddUserToUserList(gomock.Any(), "bob").Return(false, nil)

		assert.NoError(t, newAddUser(discardLogger()).Process(context.Background(), ev, gate))
	})

	t.Run("non-admin is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gate := mocks.NewMockGate(ctrl)
		ev := newCommentEvent(t, "mallory", "bob")

		gate.EXPECT().IsUserOnAdminList(gomock.Any(), "mallory").Return(false, nil)

		assert.NoError(t, newAddUser(discardLogger()).Process(context.Background(), ev, gate))
	})
}

func TestOkToTest(t *testing.T) {
	t.Run("admin triggers build", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gate := mocks.NewMockGate(ctrl)
		ev := newCommentEvent(t, "root", "bob")

		gate.EXPECT().IsUserOnAdminList(gomock.Any(), "root").Return(true, nil)
		gate.EXPECT().TriggerBuild(gomock.Any(), ev).Return(nil)

		assert.NoError(t, newOkToTest(discardLogger()).Process(context.Background(), ev, gate))
	})

	t.Run("user list membership is not enough", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gate := mocks.NewMockGate(ctrl)
		ev := newCommentEvent(t, "alice", "bob")

		gate.EXPECT().IsUserOnAdminList(gomock.Any(), "alice").Return(false, nil)

		assert.NoError(t, newOkToTest(discardLogger()).Process(context.Background(), ev, gate))
	})
}

func TestRetest(t *testing.T) {
	t.Run("eligible commenter rebuilds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gate := mocks.NewMockGate(ctrl)
		ev := newCommentEvent(t, "alice", "bob")

		gate.EXPECT().IsUserEligibleToRunCI(gomock.Any(), "alice").Return(true, nil)
		gate.EXPECT().TriggerBuild(gomock.Any(), ev).Return(nil)

		assert.NoError(t, newRetest(discardLogger()).Process(context.Background(), ev, gate))
	})

	t.Run("failed variant reports failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gate := mocks.NewMockGate(ctrl)
		ev := newCommentEvent(t, "alice", "bob")

		gate.EXPECT().IsUserEligibleToRunCI(gomock.Any(), "alice").Return(true, nil)
		gate.EXPECT().TriggerFailedBuild(gomock.Any(), ev).Return(nil)

		assert.NoError(t, newRetestFailed(discardLogger()).Process(context.Background(), ev, gate))
	})

	t.Run("ineligible commenter is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gate := mocks.NewMockGate(ctrl)
		ev := newCommentEvent(t, "mallory", "bob")

		gate.EXPECT().IsUserEligibleToRunCI(gomock.Any(), "mallory").Return(false, nil)

		assert.NoError(t, newRetest(discardLogger()).Process(context.Background(), ev, gate))
	})

	t.Run("trigger failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gate := mocks.NewMockGate(ctrl)
		ev := newCommentEvent(t, "alice", "bob")
		ciDown := errors.New("ci unavailable")

		gate.EXPECT().IsUserEligibleToRunCI(gomock.Any(), "alice").Return(true, nil)
		gate.EXPECT().TriggerBuild(gomock.Any(), ev).Return(ciDown)

		assert.ErrorIs(t, newRetest(discardLogger()).Process(context.Background(), ev, gate), ciDown)
	})
}
