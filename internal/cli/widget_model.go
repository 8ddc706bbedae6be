package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayase-dev/otodoke/internal/cli/formatter"
	"github.com/ayase-dev/otodoke/internal/client"
	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/selection"
)

// widgetModel is the bubbletea model for the product-page widget. It loads
// the product graph through the retrying Loader, then hands every variant
// change and SKU pick to the selection machine and re-renders the estimate.
type widgetModel struct {
	loader    *client.Loader
	cal       *domain.Calendar
	tag       domain.Locale
	productID string

	spin    spinner.Model
	loading bool
	loadErr error

	product *domain.Product
	machine *selection.Machine

	// focus is the group index the arrow keys act on.
	focus    int
	quitting bool
}

type productLoadedMsg struct {
	product *domain.Product
}

type productFailedMsg struct {
	err error
}

func newWidgetModel(loader *client.Loader, cal *domain.Calendar, tag domain.Locale, productID string) widgetModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StyleBlue

	return widgetModel{
		loader:    loader,
		cal:       cal,
		tag:       tag,
		productID: productID,
		spin:      sp,
		loading:   true,
	}
}

func (m widgetModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadCmd())
}

// loadCmd runs the Loader in the background. The Loader already retries
// transient failures indefinitely, so a productFailedMsg means a
// permanent fault such as an unknown product.
func (m widgetModel) loadCmd() tea.Cmd {
	loader, id := m.loader, m.productID
	return func() tea.Msg {
		p, err := loader.Load(context.Background(), id)
		if err != nil {
			return productFailedMsg{err: err}
		}
		return productLoadedMsg{product: p}
	}
}

func (m widgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case productLoadedMsg:
		m.loading = false
		m.product = msg.product
		m.machine = selection.New(msg.product, m.cal, m.tag)
		m.focus = 0
		return m, nil

	case productFailedMsg:
		m.loading = false
		m.loadErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m widgetModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "r":
		m.loading = true
		m.loadErr = nil
		return m, tea.Batch(m.spin.Tick, m.loadCmd())
	}

	if m.machine == nil || m.machine.Variant() == nil {
		return m, nil
	}

	switch msg.String() {
	case "tab", "right":
		if n := len(m.machine.Variant().Groups); n > 0 {
			m.focus = (m.focus + 1) % n
		}
	case "shift+tab", "left":
		if n := len(m.machine.Variant().Groups); n > 0 {
			m.focus = (m.focus + n - 1) % n
		}
	case "up":
		m.cycleCandidate(-1)
	case "down":
		m.cycleCandidate(1)
	case "v":
		m.cycleVariant()
	}
	return m, nil
}

// cycleCandidate moves the focused group's pick through its candidate
// list, wrapping at either end.
func (m *widgetModel) cycleCandidate(delta int) {
	v := m.machine.Variant()
	if m.focus >= len(v.Groups) {
		return
	}
	group := v.Groups[m.focus]
	selected := m.machine.Selected()

	cur := 0
	for i, code := range group.Candidates {
		if code == selected[m.focus] {
			cur = i
			break
		}
	}
	n := len(group.Candidates)
	next := (cur + delta + n) % n
	m.machine.SelectSKU(m.focus, group.Candidates[next])
}

// cycleVariant activates the next variant in catalog order.
func (m *widgetModel) cycleVariant() {
	cur := m.machine.Variant()
	variants := m.product.Variants
	if len(variants) < 2 {
		return
	}
	for i, v := range variants {
		if v.VariantID == cur.VariantID {
			next := variants[(i+1)%len(variants)]
			m.machine.ChangeVariant(next.VariantID)
			if m.focus >= len(next.Groups) {
				m.focus = 0
			}
			return
		}
	}
}

func (m widgetModel) View() string {
	if m.quitting {
		return ""
	}
	if m.loading {
		return fmt.Sprintf("\n  %s Loading product %s…\n", m.spin.View(), m.productID)
	}
	if m.loadErr != nil {
		return fmt.Sprintf("\n  %s\n  %s\n",
			formatter.StyleRed.Render(fmt.Sprintf("Load failed: %v", m.loadErr)),
			formatter.Dim("r to retry, q to quit"))
	}
	if m.product == nil || m.machine.Variant() == nil {
		return "\n  " + formatter.Dim("Product has no variants.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + formatter.Header(m.product.Title) + "\n\n")

	variant := m.machine.Variant()
	b.WriteString(fmt.Sprintf("%s %s\n\n",
		formatter.Dim("Variant:"),
		formatter.StyleBlue.Render(shortID(variant.VariantID))))

	selected := m.machine.Selected()
	for i, g := range variant.Groups {
		marker := "  "
		label := g.Label
		if label == "" {
			label = g.Code
		}
		line := fmt.Sprintf("%s: %s", label, m.skuLabel(selected[i]))
		if i == m.focus {
			marker = formatter.StyleHeader.Render("❯ ")
			line = formatter.Bold(line)
		}
		b.WriteString(marker + line + "\n")
	}

	b.WriteString("\n" + formatter.Dim("Estimated delivery") + "\n")
	b.WriteString("  " + formatter.StyleGreen.Render(m.machine.Applied().Text) + "\n")

	if m.machine.DelayVisible() {
		b.WriteString("\n" + formatter.StyleDelayBanner.Render(
			"選択された商品はお届けにお時間がかかります") + "\n")
	}

	b.WriteString("\n" + formatter.Dim(
		"↑/↓ pick  ←/→ group  v variant  r reload  q quit") + "\n")
	return b.String()
}

func (m widgetModel) skuLabel(code string) string {
	if sku, ok := m.product.SKUByCode(code); ok {
		return sku.Label()
	}
	return code
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
