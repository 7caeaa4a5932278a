package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/folio/internal/core/config"
	"github.com/colonyops/folio/internal/core/document"
	"github.com/colonyops/folio/internal/core/navigation"
	"github.com/colonyops/folio/pkg/tuitest"
)

func TestItemRows_SeedDocument(t *testing.T) {
	m := newTestModel(t)
	rows := m.itemRows(m.store.Snapshot())

	require.Len(t, rows, 5)
	assert.Equal(t, rowItem, rows[0].kind)
	assert.Equal(t, "Website redesign", rows[0].label)
	assert.Equal(t, "2 × 600.00 € = 1,200.00 €", rows[0].value)

	assert.Equal(t, rowSubItem, rows[1].kind)
	assert.Equal(t, 1, rows[1].indent)
	assert.Equal(t, "300.00 €", rows[1].value)

	assert.Equal(t, "Hosting (12 months)", rows[4].label)
}

func TestItemRows_DeselectedSubItemIsMuted(t *testing.T) {
	m := newTestModel(t)
	it := m.store.Snapshot().Items[0]
	require.NoError(t, m.store.SetSubItemSelected(it.ID, it.SubItems[0].ID, false))

	rows := m.itemRows(m.store.Snapshot())
	assert.True(t, rows[1].muted)
	assert.False(t, *rows[1].checked)
	assert.False(t, rows[2].muted)
}

func TestCycleSubItems(t *testing.T) {
	m := newTestModel(t)
	id := m.store.Snapshot().Items[1].ID
	item := func() document.InvoiceItem { return m.store.Snapshot().Items[1] }

	require.False(t, item().HasSubItems)

	require.NoError(t, m.cycleSubItems(item()))
	assert.True(t, item().HasSubItems)
	assert.Equal(t, document.ModeParentQuantity, item().SubItemsMode)

	require.NoError(t, m.cycleSubItems(item()))
	assert.Equal(t, document.ModeIndividualQuantities, item().SubItemsMode)

	require.NoError(t, m.cycleSubItems(item()))
	assert.Equal(t, document.ModeNoPrices, item().SubItemsMode)

	require.NoError(t, m.cycleSubItems(item()))
	assert.False(t, item().HasSubItems)
	assert.Equal(t, id, item().ID)
}

func TestInfoRows_Groups(t *testing.T) {
	m := newTestModel(t)
	rows := m.infoRows(m.store.Snapshot())

	groups := map[string]int{}
	for _, r := range rows {
		groups[r.group]++
	}
	assert.Equal(t, len(partyFields), groups["Issuer"])
	assert.Equal(t, len(partyFields), groups["Client"])
	assert.Equal(t, 5, groups["Invoice"])
}

func TestInfoRows_CustomFieldAddAndToggle(t *testing.T) {
	m := newTestModel(t)
	rows := m.infoRows(m.store.Snapshot())
	rows[0].on[config.ActionAdd]()

	issuer := m.store.Snapshot().Issuer
	require.Len(t, issuer.CustomFields, 1)
	assert.True(t, issuer.CustomFields[0].Visible)

	rows = m.infoRows(m.store.Snapshot())
	custom := rows[len(partyFields)]
	assert.Equal(t, "Field", custom.label)
	custom.on[config.ActionToggle]()
	assert.False(t, m.store.Snapshot().Issuer.CustomFields[0].Visible)

	rows = m.infoRows(m.store.Snapshot())
	rows[len(partyFields)].on[config.ActionDelete]()
	assert.Empty(t, m.store.Snapshot().Issuer.CustomFields)
}

func TestBlockRows_RequiredBlocksLocked(t *testing.T) {
	m := newTestModel(t)
	rows := m.blockRows(m.store.Snapshot())

	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, rowBlock, r.kind)
		assert.True(t, r.locked)
	}
}

func TestColumnRows_LastColumnIsAuto(t *testing.T) {
	m := newTestModel(t)
	b := *m.store.Snapshot().FirstBlockOfType(document.BlockInvoiceItems)

	rows := m.columnRows(b)
	require.Len(t, rows, 4)
	assert.Equal(t, "50.0%", rows[0].value)
	assert.Equal(t, "17.5% (auto)", rows[3].value)
	for _, r := range rows {
		assert.True(t, r.locked)
		assert.NotEmpty(t, r.childID)
	}
}

func TestColumnRows_HiddenColumn(t *testing.T) {
	m := newTestModel(t)
	b := m.store.Snapshot().FirstBlockOfType(document.BlockInvoiceItems)
	require.NoError(t, m.store.SetColumnVisible(b.ID, "col-total", false))

	rows := m.columnRows(*m.store.Snapshot().FirstBlockOfType(document.BlockInvoiceItems))
	assert.Equal(t, "hidden", rows[3].value)
	assert.Equal(t, "35.0% (auto)", rows[2].value)
}

func TestTableRows_AddEditRemove(t *testing.T) {
	m := newTestModel(t)
	id, err := m.store.AddBlock(document.BlockDetailedTable)
	require.NoError(t, err)
	m.store.SetActivePanel(navigation.PanelBlocks)
	m.panel.expand(id, document.ModeContent)

	rows := m.blockRows(m.store.Snapshot())
	var placeholder row
	for _, r := range rows {
		if r.kind == rowTableRow {
			placeholder = r
		}
	}
	require.Equal(t, "No rows", placeholder.label)

	placeholder.on[config.ActionAdd]()
	rows = m.blockRows(m.store.Snapshot())
	cur := rows[m.panel.cursors[navigation.PanelBlocks]]
	assert.Equal(t, rowTableRow, cur.kind)
	assert.Equal(t, "Row 1", cur.label)

	cur.on[config.ActionDelete]()
	rows = m.blockRows(m.store.Snapshot())
	assert.Equal(t, "No rows", rows[len(rows)-1].label)
}

func TestFindFocusRow_SkipsNestedRows(t *testing.T) {
	rows := []row{
		{kind: rowBlock, section: document.FocusBlock, blockID: "a"},
		{kind: rowColumn, section: document.FocusBlock, blockID: "b"},
		{kind: rowBlock, section: document.FocusBlock, blockID: "b"},
	}
	assert.Equal(t, 2, findFocusRow(rows, document.FocusTarget{Section: document.FocusBlock, BlockID: "b"}))
	assert.Equal(t, 0, findFocusRow(rows, document.FocusTarget{Section: document.FocusBlock}))
	assert.Equal(t, -1, findFocusRow(rows, document.FocusTarget{Section: document.FocusLogo}))
}

func TestPanelState_CursorClamps(t *testing.T) {
	p := newPanelState()
	p.move(navigation.PanelItems, -3, 4)
	assert.Equal(t, 0, p.cursor(navigation.PanelItems, 4))

	p.move(navigation.PanelItems, 10, 4)
	assert.Equal(t, 3, p.cursor(navigation.PanelItems, 4))
	assert.Equal(t, 1, p.cursor(navigation.PanelItems, 2))
	assert.Equal(t, 0, p.cursor(navigation.PanelItems, 0))
}

func TestCycle(t *testing.T) {
	assert.Equal(t, document.LogoCenter, cycle(logoPositions, document.LogoLeft))
	assert.Equal(t, document.LogoLeft, cycle(logoPositions, document.LogoRight))
	assert.Equal(t, document.LogoLeft, cycle(logoPositions, document.LogoPosition("bogus")))
}

func TestDesignRows_LogoCyclesAndWatermark(t *testing.T) {
	m := newTestModel(t)
	find := func(label string) row {
		for _, r := range m.designRows(m.store.Snapshot()) {
			if r.label == label {
				return r
			}
		}
		t.Fatalf("no design row %q", label)
		return row{}
	}

	find("Position").on[config.ActionToggle]()
	assert.Equal(t, document.LogoCenter, m.store.Snapshot().Logo.Position)

	find("Size").on[config.ActionToggle]()
	assert.Equal(t, document.LogoLarge, m.store.Snapshot().Logo.Size)
	assert.Equal(t, document.FocusLogo, find("Size").section)

	find("Watermark").on[config.ActionToggle]()
	assert.True(t, m.watermark)
	assert.Equal(t, m.cfg.WatermarkText, find("Watermark").value)
}

func TestModeChooser_Keys(t *testing.T) {
	c := NewModeChooser(document.ItemsTableTarget())
	assert.Equal(t, document.ModeContent, c.Selected())

	mode, cancelled := c.Update(tuitest.KeyType(tea.KeyRight))
	assert.Equal(t, document.ModeUnset, mode)
	assert.False(t, cancelled)
	assert.Equal(t, document.ModeLayout, c.Selected())

	mode, _ = c.Update(tuitest.KeyEnter())
	assert.Equal(t, document.ModeLayout, mode)

	mode, _ = c.Update(tuitest.KeyPress('c'))
	assert.Equal(t, document.ModeContent, mode)

	_, cancelled = c.Update(tuitest.KeyEsc())
	assert.True(t, cancelled)

	assert.Contains(t, tuitest.StripANSI(c.View()), "Content")
	assert.Contains(t, tuitest.StripANSI(c.View()), "Layout")
}

func TestPulseController(t *testing.T) {
	p := NewPulseController(time.Second)
	f := document.FocusTarget{Section: document.FocusItems, Seq: 3}

	cmd := p.Start(f, testNow)
	require.NotNil(t, cmd)
	assert.True(t, p.Active())
	assert.InDelta(t, 0.5, p.Progress(testNow.Add(500*time.Millisecond)), 0.001)

	_, done, _ := p.Tick(pulseTickMsg{seq: 2, at: testNow.Add(time.Hour)})
	assert.False(t, done, "stale tick")

	_, done, next := p.Tick(pulseTickMsg{seq: 3, at: testNow.Add(200 * time.Millisecond)})
	assert.False(t, done)
	assert.NotNil(t, next)

	seq, done, next := p.Tick(pulseTickMsg{seq: 3, at: testNow.Add(time.Second)})
	assert.True(t, done)
	assert.Nil(t, next)
	assert.Equal(t, uint64(3), seq)
	assert.False(t, p.Active())
	assert.InDelta(t, 1, p.Progress(testNow), 0.001)
}

func TestKeyMap(t *testing.T) {
	k := NewKeyMap(config.DefaultKeybindings())

	action, ok := k.Action(tuitest.KeyPress(' '))
	require.True(t, ok)
	assert.Equal(t, config.ActionToggle, action)

	action, ok = k.Action(tuitest.KeyType(tea.KeyCtrlS))
	require.True(t, ok)
	assert.Equal(t, config.ActionSave, action)

	assert.Equal(t, []string{"e", "enter"}, k.Keys(config.ActionEdit))
	assert.Len(t, k.KeyBindings(config.ActionSave, "missing"), 1)

	sections := k.HelpSections()
	require.NotEmpty(t, sections)
	assert.Equal(t, "General", sections[0].Title)

	var toggle string
	for _, s := range sections {
		for _, e := range s.Entries {
			if e.Desc == "toggle" {
				toggle = e.Key
			}
		}
	}
	assert.Equal(t, "space", toggle)
}
