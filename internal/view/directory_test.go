package view

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadgeto/storefront/internal/apiclient"
	"github.com/gadgeto/storefront/internal/domain"
)

type fakeDirectoryAPI struct {
	mu sync.Mutex

	lists      []domain.Category
	deletes    []int
	updates    []int
	entries    map[domain.Category][]domain.DirectoryEntry
	listErr    error
	deleteErr  error
	updateErr  error
	onListOnce func(category domain.Category) // runs before the first list returns
}

func (f *fakeDirectoryAPI) ListDirectory(category domain.Category) ([]domain.DirectoryEntry, error) {
	f.mu.Lock()
	f.lists = append(f.lists, category)
	hook := f.onListOnce
	f.onListOnce = nil
	f.mu.Unlock()

	if hook != nil {
		hook(category)
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries[category], nil
}

func (f *fakeDirectoryAPI) DeleteAdmin(id int) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, id)
	f.mu.Unlock()
	return f.deleteErr
}

func (f *fakeDirectoryAPI) UpdateStatus(id int, status domain.Status) error {
	f.mu.Lock()
	f.updates = append(f.updates, id)
	f.mu.Unlock()
	return f.updateErr
}

func entriesFixture() map[domain.Category][]domain.DirectoryEntry {
	return map[domain.Category][]domain.DirectoryEntry{
		domain.CategoryAdmin: {
			{ID: 5, Name: "Alice", Status: domain.StatusActive},
			{ID: 6, Name: "Bob", Status: domain.StatusActive},
		},
		domain.CategorySeller: {
			{ID: 9, Name: "Carol", Status: domain.StatusActive},
		},
	}
}

func TestDirectory_LoadCollection(t *testing.T) {
	api := &fakeDirectoryAPI{entries: entriesFixture()}
	d := NewDirectory()
	defer d.Teardown()

	require.NoError(t, d.LoadCollection(api, domain.CategorySeller))

	snap := d.Snapshot()
	assert.Equal(t, domain.CategorySeller, snap.Active)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "Carol", snap.Entries[0].Name)
}

func TestDirectory_LoadCollectionUnknownCategory(t *testing.T) {
	api := &fakeDirectoryAPI{entries: entriesFixture()}
	d := NewDirectory()
	defer d.Teardown()

	assert.Error(t, d.LoadCollection(api, domain.Category("bogus")))
	assert.Empty(t, api.lists)
}

func TestDirectory_StaleResponseDiscarded(t *testing.T) {
	api := &fakeDirectoryAPI{entries: entriesFixture()}
	d := NewDirectory()
	defer d.Teardown()

	// While the admin fetch is in flight, the user switches to sellers.
	// The admin response must not clobber the seller view.
	api.onListOnce = func(category domain.Category) {
		if category == domain.CategoryAdmin {
			require.NoError(t, d.LoadCollection(api, domain.CategorySeller))
		}
	}
	require.NoError(t, d.LoadCollection(api, domain.CategoryAdmin))

	snap := d.Snapshot()
	assert.Equal(t, domain.CategorySeller, snap.Active)
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, "Carol", snap.Entries[0].Name)
}

func TestDirectory_ConfirmDelete(t *testing.T) {
	api := &fakeDirectoryAPI{entries: entriesFixture()}
	d := NewDirectory()
	defer d.Teardown()

	require.NoError(t, d.LoadCollection(api, domain.CategoryAdmin))
	d.RequestDelete(5, "Alice")

	snap := d.Snapshot()
	require.NotNil(t, snap.Pending)
	assert.Equal(t, 5, snap.Pending.ID)
	assert.Equal(t, "Alice", snap.Pending.Name)

	listsBefore := len(api.lists)
	require.NoError(t, d.ConfirmDelete(api))

	assert.Equal(t, []int{5}, api.deletes, "exactly one delete, for the selected id")
	assert.Equal(t, listsBefore+1, len(api.lists), "exactly one re-fetch after a successful delete")

	snap = d.Snapshot()
	assert.Nil(t, snap.Pending)
	require.NotNil(t, snap.Notice)
	assert.Equal(t, NoticeSuccess, snap.Notice.Kind)
	assert.Equal(t, "Alice deleted successfully", snap.Notice.Message)
}

func TestDirectory_CancelDeleteNoNetwork(t *testing.T) {
	api := &fakeDirectoryAPI{entries: entriesFixture()}
	d := NewDirectory()
	defer d.Teardown()

	d.RequestDelete(5, "Alice")
	d.CancelDelete()

	assert.Nil(t, d.Snapshot().Pending)
	assert.Empty(t, api.deletes)

	// confirm after cancel is a no-op too
	require.NoError(t, d.ConfirmDelete(api))
	assert.Empty(t, api.deletes)
}

func TestDirectory_ConfirmDeleteFailureKeepsCollection(t *testing.T) {
	api := &fakeDirectoryAPI{entries: entriesFixture(), deleteErr: assert.AnError}
	d := NewDirectory()
	defer d.Teardown()

	require.NoError(t, d.LoadCollection(api, domain.CategoryAdmin))
	listsBefore := len(api.lists)

	d.RequestDelete(5, "Alice")
	require.Error(t, d.ConfirmDelete(api))

	snap := d.Snapshot()
	assert.Len(t, snap.Entries, 2, "collection unchanged on failure")
	assert.Equal(t, listsBefore, len(api.lists), "no re-fetch on failure")
	require.NotNil(t, snap.Notice)
	assert.Equal(t, NoticeError, snap.Notice.Kind)
	assert.Equal(t, "Failed to delete Alice", snap.Notice.Message)
}

func TestDirectory_ConfirmDeleteUnauthorizedNoNotice(t *testing.T) {
	api := &fakeDirectoryAPI{entries: entriesFixture(), deleteErr: apiclient.ErrUnauthorized}
	d := NewDirectory()
	defer d.Teardown()

	d.RequestDelete(5, "Alice")
	require.ErrorIs(t, d.ConfirmDelete(api), apiclient.ErrUnauthorized)

	assert.Nil(t, d.Snapshot().Notice, "auth failures redirect, they do not show a banner")
}

func TestDirectory_ToggleStatus(t *testing.T) {
	api := &fakeDirectoryAPI{entries: entriesFixture()}
	d := NewDirectory()
	defer d.Teardown()

	require.NoError(t, d.LoadCollection(api, domain.CategoryAdmin))
	listsBefore := len(api.lists)

	require.NoError(t, d.ToggleStatus(api, 5, domain.StatusInactive))

	assert.Equal(t, []int{5}, api.updates)
	assert.Equal(t, listsBefore+1, len(api.lists), "authoritative re-fetch after update")

	snap := d.Snapshot()
	require.NotNil(t, snap.Notice)
	assert.Equal(t, "Status updated successfully", snap.Notice.Message)
}

func TestDirectory_ToggleStatusInvalid(t *testing.T) {
	api := &fakeDirectoryAPI{entries: entriesFixture()}
	d := NewDirectory()
	defer d.Teardown()

	assert.Error(t, d.ToggleStatus(api, 5, domain.Status("frozen")))
	assert.Empty(t, api.updates)
}

func TestNotifier_SupersedeRestartsTimer(t *testing.T) {
	var n notifier
	defer n.stop()

	n.set(NoticeError, "first")
	n.set(NoticeSuccess, "second")

	got := n.get()
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Message)
	assert.Equal(t, NoticeSuccess, got.Kind)

	// mutating the returned copy must not touch the live notice
	got.Message = "mutated"
	assert.Equal(t, "second", n.get().Message)
}

func TestNotifier_ClearAndStop(t *testing.T) {
	var n notifier

	n.set(NoticeSuccess, "hello")
	n.clear()
	assert.Nil(t, n.get())

	n.set(NoticeError, "again")
	n.stop()
	assert.Nil(t, n.get())

	// stop with nothing active must not panic
	n.stop()
}

func TestNotifier_ExpiresAfterTTL(t *testing.T) {
	if testing.Short() {
		t.Skip("timer expiry test")
	}

	var n notifier
	defer n.stop()

	n.set(NoticeSuccess, "brief")
	require.NotNil(t, n.get())

	assert.Eventually(t, func() bool { return n.get() == nil },
		SuccessNoticeTTL+time.Second, 50*time.Millisecond)
}

func TestSessions_GetAndEvict(t *testing.T) {
	s := NewSessions()

	a := s.Get("sid-a")
	require.NotNil(t, a.Directory)
	require.NotNil(t, a.Submission)
	assert.Same(t, a, s.Get("sid-a"), "same session gets the same state")
	assert.NotSame(t, a, s.Get("sid-b"))

	a.Directory.RequestDelete(1, "X")
	s.Evict("sid-a")
	assert.NotSame(t, a, s.Get("sid-a"), "evicted session starts fresh")

	// evicting an unknown session is a no-op
	s.Evict("nope")
}

func TestSessions_IdleStateExpires(t *testing.T) {
	s := newSessions(20*time.Millisecond, 10*time.Millisecond)

	old := s.Get("sid-idle")
	require.NotNil(t, old)

	// the tick outlasts the TTL so renewal from polling cannot keep the
	// state alive
	assert.Eventually(t, func() bool {
		return s.Get("sid-idle") != old
	}, 2*time.Second, 50*time.Millisecond, "idle session state was never dropped")
}
