// Package render turns grouped pages into HTML and images.
//
// # Overview
//
// This package is the only place that knows the field names the HTML
// templates expect. It provides:
//
//   - Views: JSON-ready structures per pipeline ([SurgeView], [RankingView],
//     [AnswerSheetView])
//   - Encoding: [Encode] writes UTF-8 JSON with Hangul and markup untouched
//   - Templates: [Template] injects encoded data and the display date
//   - Capture: the [Capturer] seam and its headless Chrome implementation
//
// # Views
//
// Views nest exactly as the templates iterate: a surge page is a list of
// cards, a ranking page a list of material groups, and the answer sheet a
// country, category, stock hierarchy. [FlattenSurge], [FlattenRanking] and
// [FlattenAnswerSheet] read a view back into ordered stock names, which is
// how tests check that nothing was lost or reordered.
//
//	view := render.SurgeView(page)
//	html, err := tmpl.Render(view, day)
//	png, err := capturer.Capture(ctx, html, render.SurgeLayout)
//
// # Capture
//
// [Chrome] shells out to a Chrome or Chromium binary with --headless and
// --screenshot. It requires one of google-chrome, chromium or
// chromium-browser on PATH, or an explicit binary path.
package render
