package editor

import (
	"fmt"

	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/ordering"
)

// AddBlock appends an enabled block of type t with default content and
// returns its id. Required block types exist exactly once per document.
func (s *Store) AddBlock(t document.BlockType) (string, error) {
	id := s.newID()
	err := s.apply("block.add", func(inv *document.Invoice) (bool, error) {
		payload := document.NewPayload(t)
		if payload == nil {
			return false, fmt.Errorf("%w: %q", ErrUnknownBlockType, t)
		}
		if t.Required() && inv.FirstBlockOfType(t) != nil {
			return false, fmt.Errorf("%w: %s", ErrBlockExists, t)
		}

		inv.Blocks = ordering.Sorted(inv.Blocks, ordering.BlockOrder)
		inv.Blocks = append(inv.Blocks, document.Block{ID: id, Enabled: true, Payload: payload})
		ordering.Renumber(inv.Blocks, ordering.SetBlockOrder)
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// RemoveBlock deletes a block. Required blocks can only be disabled.
func (s *Store) RemoveBlock(id string) error {
	return s.apply("block.remove", func(inv *document.Invoice) (bool, error) {
		i := inv.FindBlock(id)
		if i < 0 {
			return false, nil
		}
		if t := inv.Blocks[i].Type(); t.Required() {
			return false, fmt.Errorf("%s: %w", t.Label(), ErrRequiredBlock)
		}

		inv.Blocks = append(inv.Blocks[:i], inv.Blocks[i+1:]...)
		inv.Blocks = ordering.Sorted(inv.Blocks, ordering.BlockOrder)
		ordering.Renumber(inv.Blocks, ordering.SetBlockOrder)
		return true, nil
	})
}

// SetBlockEnabled shows or hides a block in rendered output.
func (s *Store) SetBlockEnabled(id string, enabled bool) error {
	return s.apply("block.enable", func(inv *document.Invoice) (bool, error) {
		i := inv.FindBlock(id)
		if i < 0 || inv.Blocks[i].Enabled == enabled {
			return false, nil
		}
		inv.Blocks[i].Enabled = enabled
		return true, nil
	})
}

// ReorderBlocks moves the block at display position source to target.
func (s *Store) ReorderBlocks(source, target int) error {
	return s.apply("block.reorder", func(inv *document.Invoice) (bool, error) {
		blocks, ok := ordering.Blocks(inv.Blocks, source, target)
		if ok {
			inv.Blocks = blocks
		}
		return ok, nil
	})
}

// UpdateBlock replaces the payload of a block with fn's result. fn receives
// a private copy it may modify and return; returning nil cancels the update.
// The result must keep the block's type.
func (s *Store) UpdateBlock(id string, fn func(document.Payload) document.Payload) error {
	return s.apply("block.update", func(inv *document.Invoice) (bool, error) {
		i := inv.FindBlock(id)
		if i < 0 {
			return false, nil
		}
		b := &inv.Blocks[i]

		next := fn(document.ClonePayload(b.Payload))
		if next == nil {
			return false, nil
		}
		if next.BlockType() != b.Type() {
			return false, fmt.Errorf("%w: got %s, want %s", ErrPayloadType, next.BlockType(), b.Type())
		}

		b.Payload = next
		normalizeColumns(b)
		return true, nil
	})
}
