// Package projection maintains the client-visible item list as an overlay
// of pending, unconfirmed mutations on top of the last server-confirmed
// baseline.
//
// Mutations are recorded as intents and folded over the baseline in
// submission order, so the UI always renders a single coherent list
// without blocking on network round trips. Server completions never touch
// the projection directly; the caller re-fetches the authoritative list
// and installs it with Reset, which retires every pending intent at once.
//
// A Projection is intended for a single client goroutine and is not safe
// for concurrent use.
package projection

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/unclutter.space/internal/inventory"
	"github.com/louisbranch/unclutter.space/internal/platform/id"
)

// Status tags a folded entry with its in-flight mutation state.
type Status string

const (
	// StatusNone marks a server-confirmed entry with no pending mutation.
	StatusNone Status = ""
	// StatusCreating marks a locally created entry awaiting confirmation.
	StatusCreating Status = "creating"
	// StatusUpdating marks an entry with a pending field update.
	StatusUpdating Status = "updating"
	// StatusDeleting marks an entry with a pending deletion. Deletion
	// dominates display: later updates may still change fields but never
	// clear this tag.
	StatusDeleting Status = "deleting"
)

// IntentKind identifies the mutation a pending intent represents.
type IntentKind int

const (
	// IntentCreate is a pending item creation.
	IntentCreate IntentKind = iota + 1
	// IntentUpdate is a pending partial item update.
	IntentUpdate
	// IntentDelete is a pending item deletion.
	IntentDelete
)

// Intent is a pending, not-yet-confirmed mutation.
type Intent struct {
	Kind        IntentKind
	Item        inventory.Item // create draft, including placeholder id
	ID          string         // update/delete target
	Patch       inventory.ItemPatch
	SubmittedAt time.Time
}

// Entry is one row of the folded projection.
type Entry struct {
	Item   inventory.Item
	Status Status
}

// Projection overlays pending intents on the last confirmed baseline.
type Projection struct {
	baseline    []inventory.Item
	intents     []Intent
	clock       func() time.Time
	idGenerator func() (string, error)
}

// New creates a projection seeded with the given baseline.
func New(baseline []inventory.Item) *Projection {
	p := &Projection{
		clock:       time.Now,
		idGenerator: id.NewID,
	}
	p.baseline = copyItems(baseline)
	return p
}

// SubmitCreate records a pending creation and returns the placeholder id
// assigned to the draft. The draft keeps its id when it already has one.
func (p *Projection) SubmitCreate(draft inventory.Item) (string, error) {
	if draft.ID == "" {
		generated, err := p.idGenerator()
		if err != nil {
			return "", fmt.Errorf("generate placeholder id: %w", err)
		}
		draft.ID = "pending-" + generated
	}
	p.intents = append(p.intents, Intent{
		Kind:        IntentCreate,
		Item:        draft,
		ID:          draft.ID,
		SubmittedAt: p.clock().UTC(),
	})
	return draft.ID, nil
}

// SubmitUpdate records a pending partial update for the given item.
func (p *Projection) SubmitUpdate(itemID string, patch inventory.ItemPatch) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return fmt.Errorf("item id is required")
	}
	p.intents = append(p.intents, Intent{
		Kind:        IntentUpdate,
		ID:          itemID,
		Patch:       patch,
		SubmittedAt: p.clock().UTC(),
	})
	return nil
}

// SubmitDelete records a pending deletion for the given item. The entry
// stays visible, tagged StatusDeleting, until a re-fetch retires it.
func (p *Projection) SubmitDelete(itemID string) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return fmt.Errorf("item id is required")
	}
	p.intents = append(p.intents, Intent{
		Kind:        IntentDelete,
		ID:          itemID,
		SubmittedAt: p.clock().UTC(),
	})
	return nil
}

// Reset installs a fresh authoritative baseline and retires all pending
// intents. This is the only mechanism that removes intents.
func (p *Projection) Reset(baseline []inventory.Item) {
	p.baseline = copyItems(baseline)
	p.intents = nil
}

// Pending returns the pending intents in submission order.
func (p *Projection) Pending() []Intent {
	out := make([]Intent, len(p.intents))
	copy(out, p.intents)
	return out
}

// Entries folds the pending intents over the baseline and returns the
// list the UI should render.
func (p *Projection) Entries() []Entry {
	return Fold(p.baseline, p.intents)
}

// Fold computes the projection for a baseline and an ordered intent
// sequence. The fold is pure: it never mutates its inputs, every entry is
// a fresh value, and the same inputs always produce the same output.
func Fold(baseline []inventory.Item, intents []Intent) []Entry {
	entries := make([]Entry, 0, len(baseline)+len(intents))
	for _, item := range copyItems(baseline) {
		entries = append(entries, Entry{Item: item})
	}

	for _, intent := range intents {
		switch intent.Kind {
		case IntentCreate:
			created := Entry{Item: copyItem(intent.Item), Status: StatusCreating}
			entries = append([]Entry{created}, entries...)
		case IntentUpdate:
			for i := range entries {
				if entries[i].Item.ID != intent.ID {
					continue
				}
				entries[i].Item = overlayPatch(entries[i].Item, intent.Patch)
				if entries[i].Status != StatusDeleting {
					entries[i].Status = StatusUpdating
				}
				break
			}
		case IntentDelete:
			for i := range entries {
				if entries[i].Item.ID == intent.ID {
					entries[i].Status = StatusDeleting
					break
				}
			}
		}
	}

	return entries
}

// overlayPatch applies patch fields for display. Unlike
// inventory.ApplyPatch it leaves timestamps alone; ordering and start
// dates are server concerns settled at the next re-fetch.
func overlayPatch(item inventory.Item, patch inventory.ItemPatch) inventory.Item {
	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Pieces != nil {
		item.Pieces = *patch.Pieces
	}
	if patch.Deadline != nil {
		item.Deadline = patch.Deadline.UTC()
	}
	if patch.CategoryID != nil {
		item.CategoryID = strings.TrimSpace(*patch.CategoryID)
	}
	return item
}

func copyItem(item inventory.Item) inventory.Item {
	if item.ArchivedAt != nil {
		archivedAt := *item.ArchivedAt
		item.ArchivedAt = &archivedAt
	}
	return item
}

func copyItems(items []inventory.Item) []inventory.Item {
	out := make([]inventory.Item, len(items))
	for i, item := range items {
		out[i] = copyItem(item)
	}
	return out
}
