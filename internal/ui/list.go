package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/norris/internal/jokes"
)

// Virtual list geometry.
const (
	// listOverscan is how many cards beyond the visible ones are rendered on
	// each side.
	listOverscan = 2

	// cardHChrome is border plus padding, cardVChrome is border plus the
	// header line.
	cardHChrome = 4
	cardVChrome = 3

	minTextWidth  = 20
	skeletonCards = 4
)

// rowLines estimates the height of a joke card from its extent, without
// rendering it.
func rowLines(text string, width int) int {
	inner := max(width-cardHChrome, minTextWidth)
	extent := jokes.EstimateExtent(text)
	return (extent+inner-1)/inner + cardVChrome
}

func rowHeights(list []jokes.Joke, width int) []int {
	heights := make([]int, len(list))
	for i, j := range list {
		heights[i] = rowLines(j.Text, width)
	}
	return heights
}

func clampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// scrollTop returns the first visible row so that cursor stays on screen,
// moving as little as possible from the previous top.
func scrollTop(heights []int, cursor, top, viewport int) int {
	n := len(heights)
	if n == 0 {
		return 0
	}
	cursor = clampCursor(cursor, n)
	top = clampCursor(top, n)
	if cursor < top {
		return cursor
	}
	used := 0
	for i := top; i <= cursor; i++ {
		used += heights[i]
	}
	for used > viewport && top < cursor {
		used -= heights[top]
		top++
	}
	return top
}

// visibleWindow returns the half-open range of rows to render when top is
// the first visible row, widened by overscan rows on both sides.
func visibleWindow(heights []int, top, viewport, overscan int) (int, int) {
	n := len(heights)
	if n == 0 {
		return 0, 0
	}
	top = clampCursor(top, n)
	end := top
	used := 0
	for end < n && used < viewport {
		used += heights[end]
		end++
	}
	return max(0, top-overscan), min(n, end+overscan)
}

// pageStep is how many rows a page jump moves.
func pageStep(heights []int, top, viewport int) int {
	start, end := visibleWindow(heights, top, viewport, 0)
	return max(1, end-start-1)
}

// renderList renders the cards around top into exactly height lines.
func (m Model) renderList(list []jokes.Joke, cursor, top, width, height int) string {
	heights := rowHeights(list, width)
	start, end := visibleWindow(heights, top, height, listOverscan)

	var lines []string
	offset := 0
	for i := start; i < end; i++ {
		card := strings.Split(m.renderCard(list[i], i == cursor, width, heights[i]), "\n")
		if i < top {
			offset += len(card)
		}
		lines = append(lines, card...)
	}
	return fitLines(lines[min(offset, len(lines)):], height)
}

func (m Model) renderCard(j jokes.Joke, focused bool, width, lines int) string {
	styles := m.theme.Styles()
	style := styles.Card
	if focused {
		style = styles.FocusedCard
	}

	star := styles.FaintText.Render("☆")
	if j.Favorite {
		star = styles.Star.Render("★")
	}
	header := []string{star, styles.MutedText.Render(fmt.Sprintf("#%d", j.ID))}
	for _, c := range j.Categories {
		header = append(header, styles.Category.Render(c))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(header, " "),
		styles.Text.Render(j.Text),
	)
	return style.
		Width(max(width-2, minTextWidth)).
		Height(max(lines-2, 1)).
		Render(body)
}

// renderSkeleton draws placeholder cards while a fetch is running.
func (m Model) renderSkeleton(width, height int) string {
	styles := m.theme.Styles()
	inner := max(width-cardHChrome, minTextWidth)
	placeholder := strings.Join([]string{
		strings.Repeat("░", inner/4),
		strings.Repeat("░", inner),
		strings.Repeat("░", inner*2/3),
	}, "\n")

	var lines []string
	for i := 0; i < skeletonCards; i++ {
		card := styles.Skeleton.
			Width(max(width-2, minTextWidth)).
			Render(placeholder)
		lines = append(lines, strings.Split(card, "\n")...)
	}
	return fitLines(lines, height)
}

// renderEmpty centers a message in the list area.
func (m Model) renderEmpty(title, hint string, width, height int) string {
	styles := m.theme.Styles()
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styles.Text.Bold(true).Render(title),
		styles.MutedText.Render(hint),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

// fitLines pads or cuts lines to exactly height.
func fitLines(lines []string, height int) string {
	if height <= 0 {
		return ""
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
