// Cinematch - Movie Recommendations and Catalog Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

//go:build js && wasm

package main

import (
	"errors"
	"syscall/js"

	"github.com/tomtom215/cinematch/internal/ui"
)

// page holds the DOM elements the front end drives. Missing elements stay
// undefined and the matching view is left nil.
type page struct {
	doc         js.Value
	input       js.Value
	button      js.Value
	results     js.Value
	suggestions js.Value
	insights    js.Value

	// suggestionFuncs are the click handlers of the current suggestion list.
	suggestionFuncs []js.Func
	app             *ui.App
}

func newPage(doc js.Value) *page {
	byID := func(id string) js.Value { return doc.Call("getElementById", id) }
	return &page{
		doc:         doc,
		input:       byID(ui.ElementInput),
		button:      byID(ui.ElementRecommendButton),
		results:     byID(ui.ElementResults),
		suggestions: byID(ui.ElementSuggestions),
		insights:    byID(ui.ElementVisualizations),
	}
}

func present(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}

func (p *page) views() ui.Views {
	var v ui.Views
	if present(p.input) {
		v.Input = inputField{p.input}
	}
	if present(p.results) {
		v.Results = resultsView{p}
	}
	if present(p.suggestions) {
		v.Suggestions = suggestionView{p}
	}
	if present(p.insights) {
		v.Visualizations = &insightsView{page: p}
	}
	return v
}

// bind attaches the event listeners. The handlers live as long as the page.
func (p *page) bind(app *ui.App) {
	p.app = app
	if present(p.button) {
		p.button.Call("addEventListener", "click", js.FuncOf(func(js.Value, []js.Value) any {
			app.Recommend()
			return nil
		}))
	}
	if present(p.input) {
		p.input.Call("addEventListener", "keyup", js.FuncOf(func(_ js.Value, args []js.Value) any {
			app.KeyUp(args[0].Get("key").String(), p.input.Get("value").String())
			return nil
		}))
	}
}

func (p *page) element(tag, class, text string) js.Value {
	el := p.doc.Call("createElement", tag)
	if class != "" {
		el.Set("className", class)
	}
	if text != "" {
		el.Set("textContent", text)
	}
	return el
}

func (p *page) message(kind ui.MessageKind, text string) js.Value {
	class := ""
	if kind == ui.MessageError {
		class = "error"
	}
	return p.element("p", class, text)
}

type inputField struct{ el js.Value }

func (f inputField) Value() string { return f.el.Get("value").String() }

func (f inputField) SetValue(value string) { f.el.Set("value", value) }

type resultsView struct{ *page }

func (r resultsView) ShowLoading() {
	r.results.Call("replaceChildren", r.element("p", "loading", "Loading..."))
}

func (r resultsView) ShowMessage(kind ui.MessageKind, text string) {
	r.results.Call("replaceChildren", r.message(kind, text))
}

func (r resultsView) ShowRecommendations(heading string, items []ui.ResultItem) {
	list := r.element("ul", "", "")
	for _, item := range items {
		li := r.element("li", "", item.Title)
		if item.Badge != "" {
			li.Call("append", r.element("span", "badge", item.Badge))
		}
		list.Call("append", li)
	}
	r.results.Call("replaceChildren", r.element("h2", "", heading), list)
}

type suggestionView struct{ *page }

func (s suggestionView) ShowSuggestions(titles []string) {
	s.releaseSuggestions()
	s.suggestions.Call("replaceChildren")
	for _, title := range titles {
		fn := js.FuncOf(func(js.Value, []js.Value) any {
			s.app.SelectSuggestion(title)
			return nil
		})
		s.suggestionFuncs = append(s.suggestionFuncs, fn)

		li := s.element("li", "", title)
		li.Call("addEventListener", "click", fn)
		s.suggestions.Call("append", li)
	}
}

func (s suggestionView) ClearSuggestions() {
	s.releaseSuggestions()
	s.suggestions.Call("replaceChildren")
}

func (p *page) releaseSuggestions() {
	for _, fn := range p.suggestionFuncs {
		fn.Release()
	}
	p.suggestionFuncs = nil
}

// insightsView keeps the chart canvases in place and reports status in a
// heading inserted above them.
type insightsView struct {
	*page
	status js.Value
}

func (v *insightsView) setStatus(el js.Value) {
	if present(v.status) {
		v.status.Call("replaceWith", el)
	} else {
		v.insights.Call("prepend", el)
	}
	v.status = el
}

func (v *insightsView) ShowLoading() {
	v.setStatus(v.element("p", "loading", "Loading..."))
}

func (v *insightsView) ShowMessage(kind ui.MessageKind, text string) {
	v.setStatus(v.message(kind, text))
}

func (v *insightsView) RenderCharts(heading string, charts []ui.Chart) error {
	chartJS := js.Global().Get("Chart")
	if !present(chartJS) {
		return errors.New("chart.js is not loaded")
	}
	v.setStatus(v.element("h2", "", heading))

	for _, c := range charts {
		canvas := v.doc.Call("getElementById", c.CanvasID)
		if !present(canvas) {
			continue
		}
		chartJS.New(canvas.Call("getContext", "2d"), js.ValueOf(chartConfig(c)))
	}
	return nil
}

// chartConfig converts a chart into a Chart.js v4 configuration object.
func chartConfig(c ui.Chart) map[string]any {
	labels := make([]any, len(c.Labels))
	for i, l := range c.Labels {
		labels[i] = l
	}
	values := make([]any, len(c.Values))
	for i, n := range c.Values {
		values[i] = n
	}

	dataset := map[string]any{"data": values}
	if c.Label != "" {
		dataset["label"] = c.Label
	}
	if len(c.Colors) == 1 {
		dataset["backgroundColor"] = c.Colors[0]
	} else {
		colors := make([]any, len(c.Colors))
		for i, col := range c.Colors {
			colors[i] = col
		}
		dataset["backgroundColor"] = colors
	}

	kind := string(c.Kind)
	options := map[string]any{"responsive": true}
	if c.Kind == ui.ChartHorizontalBar {
		kind = string(ui.ChartBar)
		options["indexAxis"] = "y"
	}
	if c.BeginAtZero {
		axis := "y"
		if c.Kind == ui.ChartHorizontalBar {
			axis = "x"
		}
		options["scales"] = map[string]any{axis: map[string]any{"beginAtZero": true}}
	}

	return map[string]any{
		"type":    kind,
		"data":    map[string]any{"labels": labels, "datasets": []any{dataset}},
		"options": options,
	}
}
