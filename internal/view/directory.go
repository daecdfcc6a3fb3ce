package view

import (
	"errors"
	"fmt"

	"sync"

	"github.com/gadgeto/storefront/internal/apiclient"
	"github.com/gadgeto/storefront/internal/domain"
)

// DirectoryAPI is the slice of the backend boundary the directory view
// needs. *apiclient.RequestClient satisfies it.
type DirectoryAPI interface {
	ListDirectory(category domain.Category) ([]domain.DirectoryEntry, error)
	DeleteAdmin(id int) error
	UpdateStatus(id int, status domain.Status) error
}

// PendingDeletion is the selection held while a delete confirmation is open.
// It is discarded on confirm or cancel.
type PendingDeletion struct {
	ID   int
	Name string
}

// Directory maintains the displayed collection for the dashboard's active
// category and runs item-level mutating actions. One instance per session;
// all methods are safe for concurrent use.
type Directory struct {
	mu      sync.Mutex
	active  domain.Category
	entries []domain.DirectoryEntry
	pending *PendingDeletion
	busy    bool

	notices notifier
}

// DirectorySnapshot is an immutable copy of the view state for rendering.
type DirectorySnapshot struct {
	Active  domain.Category
	Entries []domain.DirectoryEntry
	Pending *PendingDeletion
	Notice  *Notice
}

func NewDirectory() *Directory {
	return &Directory{active: domain.CategoryAdmin}
}

// LoadCollection fetches the category's collection and replaces the current
// one atomically. Responses are tagged with the category they were requested
// for; if the active category moved on while the fetch was in flight, the
// stale response is discarded.
func (d *Directory) LoadCollection(api DirectoryAPI, category domain.Category) error {
	if !category.Valid() {
		return fmt.Errorf("unknown directory category %q", category)
	}

	d.mu.Lock()
	d.active = category
	d.mu.Unlock()

	entries, err := api.ListDirectory(category)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active != category {
		// stale response, a later tab switch owns the view now
		return nil
	}
	d.entries = entries
	return nil
}

// RequestDelete opens the confirmation for one entry. Nothing is mutated
// until ConfirmDelete.
func (d *Directory) RequestDelete(id int, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = &PendingDeletion{ID: id, Name: name}
}

// CancelDelete discards the pending selection without any network call.
func (d *Directory) CancelDelete() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = nil
}

// ConfirmDelete deletes the pending entry and re-fetches the active category
// to resync. On failure the collection is left unchanged and an error notice
// is shown. A confirm with nothing pending, or while another mutation is
// outstanding, is a no-op.
func (d *Directory) ConfirmDelete(api DirectoryAPI) error {
	d.mu.Lock()
	if d.pending == nil || d.busy {
		d.mu.Unlock()
		return nil
	}
	pending := *d.pending
	d.pending = nil
	d.busy = true
	category := d.active
	d.mu.Unlock()

	defer d.clearBusy()

	if err := api.DeleteAdmin(pending.ID); err != nil {
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			d.notices.set(NoticeError, fmt.Sprintf("Failed to delete %s", pending.Name))
		}
		return err
	}

	d.notices.set(NoticeSuccess, fmt.Sprintf("%s deleted successfully", pending.Name))
	return d.refresh(api, category)
}

// ToggleStatus updates an entry's status, then re-fetches so the view shows
// the backend's authoritative value rather than the optimistic one.
func (d *Directory) ToggleStatus(api DirectoryAPI, id int, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil
	}
	d.busy = true
	category := d.active
	d.mu.Unlock()

	defer d.clearBusy()

	if err := api.UpdateStatus(id, status); err != nil {
		if !errors.Is(err, apiclient.ErrUnauthorized) {
			d.notices.set(NoticeError, "Failed to update status")
		}
		return err
	}

	d.notices.set(NoticeSuccess, "Status updated successfully")
	return d.refresh(api, category)
}

func (d *Directory) refresh(api DirectoryAPI, category domain.Category) error {
	entries, err := api.ListDirectory(category)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == category {
		d.entries = entries
	}
	return nil
}

func (d *Directory) clearBusy() {
	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
}

// Snapshot returns a copy of the current view state for rendering.
func (d *Directory) Snapshot() DirectorySnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snap := DirectorySnapshot{Active: d.active}
	snap.Entries = make([]domain.DirectoryEntry, len(d.entries))
	copy(snap.Entries, d.entries)
	if d.pending != nil {
		pending := *d.pending
		snap.Pending = &pending
	}
	snap.Notice = d.notices.get()
	return snap
}

// Teardown stops the notice timer. Called when the session ends.
func (d *Directory) Teardown() {
	d.notices.stop()
}
