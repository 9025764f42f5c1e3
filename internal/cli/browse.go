// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/madhwagpt-tui/internal/api"
	"github.com/jeranaias/madhwagpt-tui/internal/pagination"
	"github.com/jeranaias/madhwagpt-tui/internal/scripture"
	"github.com/jeranaias/madhwagpt-tui/internal/util"
)

// =============================================================================
// WORKS
// =============================================================================

// WorksCmd lists the catalog.
type WorksCmd struct {
	JSON bool `help:"Output as JSON."`
}

// Run prints every work with its metadata.
func (c *WorksCmd) Run(app *App) error {
	lib, err := app.library(app.policy(false))
	if err != nil {
		return err
	}
	works := lib.Works()

	if c.JSON {
		return app.writeJSON(WorksData{Works: works})
	}

	app.printf("%s\n", TitleStyle.Render("Works"))
	app.printf("%s\n", RenderSeparatorAdaptive())
	for i, w := range works {
		app.printf("%d. %s  %s\n", i+1, ValueStyle.Bold(true).Render(w.Title), DimStyle.Render(w.Description))
		app.printf("   %s %s\n", RenderLabel("Language", 12), w.Language)
		app.printf("   %s %s, %s\n", RenderLabel("Contents", 12), w.Metadata[0], w.Metadata[1])
	}
	return nil
}

// findWork resolves a work by title or number, hinting at close titles.
func findWork(lib *scripture.Library, name string) (scripture.Work, error) {
	works := lib.Works()
	w, err := scripture.FindWork(works, name)
	if err == nil {
		return w, nil
	}
	titles := make([]string, len(works))
	for i, w := range works {
		titles[i] = w.Title
	}
	return scripture.Work{}, NewNotFoundError("work", name, titles)
}

// =============================================================================
// CHAPTERS
// =============================================================================

// ChaptersCmd lists one page of a work's chapters.
type ChaptersCmd struct {
	Work   string `arg:"" help:"Work title or number, e.g. Bhagavatgeetha or 1."`
	Page   int    `short:"p" default:"1" help:"Page to show, starting at 1."`
	JSON   bool   `help:"Output as JSON."`
	Strict bool   `help:"Fail on service errors instead of printing an empty list."`
}

// Run fetches the chapters and prints the requested page.
func (c *ChaptersCmd) Run(app *App) error {
	lib, err := app.library(app.policy(c.Strict))
	if err != nil {
		return err
	}
	work, err := findWork(lib, c.Work)
	if err != nil {
		return err
	}

	chapters, err := lib.Chapters(app.context(), work)
	if err != nil {
		return err
	}

	pager := pagination.New(chapters, app.Config.UI.PageSize)
	if c.Page < 1 || (pager.TotalPages() > 0 && c.Page > pager.TotalPages()) {
		return NewValidationErrorWithExample("page", fmt.Sprint(c.Page),
			fmt.Sprintf("must be between 1 and %d", max(pager.TotalPages(), 1)), "--page 2")
	}
	pager.GoTo(c.Page - 1)

	if c.JSON {
		return app.writeJSON(ChaptersData{
			Work:       work.Title,
			Page:       pager.Page() + 1,
			TotalPages: pager.TotalPages(),
			Total:      len(chapters),
			Chapters:   pager.CurrentItems(),
		})
	}

	app.printf("%s\n", TitleStyle.Render(work.Title))
	app.printf("%s\n", RenderSeparatorAdaptive())
	page := pager.CurrentItems()
	if len(page) == 0 {
		app.printf("%s\n", DimStyle.Render("No chapters."))
		return nil
	}
	width := GetTerminalWidth()
	for _, ch := range page {
		app.printf("%s\n", util.TruncateWidth(ch.Label(), width))
		app.printf("   %s\n", DimStyle.Render(util.TruncateWidth(ch.DisplayName(), width-3)))
	}
	app.printf("\n%s\n", DimStyle.Render(fmt.Sprintf("Page %d of %d", pager.Page()+1, pager.TotalPages())))
	return nil
}

// =============================================================================
// VERSES
// =============================================================================

// VersesCmd lists the verses of one chapter.
type VersesCmd struct {
	Work    string `arg:"" help:"Work title or number."`
	Chapter int    `arg:"" help:"Chapter (or sandhi) number."`
	Search  string `short:"s" help:"Only show verses containing this text. Diacritics and case are ignored."`
	JSON    bool   `help:"Output as JSON."`
	Strict  bool   `help:"Fail on service errors instead of printing an empty list."`
}

// Run fetches the verses and prints one line per verse.
func (c *VersesCmd) Run(app *App) error {
	lib, err := app.library(app.policy(c.Strict))
	if err != nil {
		return err
	}
	work, err := findWork(lib, c.Work)
	if err != nil {
		return err
	}

	verses, err := lib.Verses(app.context(), work, c.Chapter)
	if err != nil {
		return err
	}
	verses = scripture.Search(verses, c.Search)

	if c.JSON {
		return app.writeJSON(VersesData{
			Work:    work.Title,
			Chapter: c.Chapter,
			Search:  c.Search,
			Total:   len(verses),
			Verses:  verses,
		})
	}

	app.printf("%s\n", TitleStyle.Render(fmt.Sprintf("%s %d", work.Title, c.Chapter)))
	app.printf("%s\n", RenderSeparatorAdaptive())
	if len(verses) == 0 {
		app.printf("%s\n", DimStyle.Render("No verses."))
		return nil
	}
	width := GetTerminalWidth()
	for _, v := range verses {
		// UNICODE: transliteration carries IAST diacritics, truncate by width.
		line := fmt.Sprintf("%-6s %s", v.Title(), util.FirstLine(v.Transliteration))
		app.printf("%s\n", util.TruncateWidth(line, width))
	}
	app.printf("\n%s\n", DimStyle.Render(fmt.Sprintf("%d verses", len(verses))))
	return nil
}

// =============================================================================
// VERSE
// =============================================================================

// VerseCmd shows one verse in full.
type VerseCmd struct {
	Work    string `arg:"" help:"Work title or number."`
	Chapter int    `arg:"" help:"Chapter (or sandhi) number."`
	Key     string `arg:"" help:"Verse title such as 2.47, or its canonical ID."`
	JSON    bool   `help:"Output as JSON."`
}

// Run fetches the chapter and prints the selected verse. The strict policy
// always applies: an empty list would only report "not found".
func (c *VerseCmd) Run(app *App) error {
	lib, err := app.library(app.policy(true))
	if err != nil {
		return err
	}
	work, err := findWork(lib, c.Work)
	if err != nil {
		return err
	}

	verses, err := lib.Verses(app.context(), work, c.Chapter)
	if err != nil {
		return err
	}
	v, ok := scripture.FindVerse(verses, c.Key)
	if !ok {
		titles := make([]string, len(verses))
		for i, v := range verses {
			titles[i] = v.Title()
		}
		return NewNotFoundError("verse", c.Key, titles)
	}

	if c.JSON {
		return app.writeJSON(VerseData{Work: work.Title, Chapter: c.Chapter, Title: v.Title(), Verse: v})
	}

	app.printf("%s\n", renderVerse(v, GetTerminalWidth()))
	return nil
}

// renderVerse lays a verse out for the terminal.
func renderVerse(v scripture.Verse, width int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Verse " + v.Title()))
	b.WriteString("  " + DimStyle.Render(v.CanonicalID) + "\n")

	section := func(label, body string) {
		if strings.TrimSpace(body) == "" {
			return
		}
		b.WriteString(SectionStyle.Render(label) + "\n")
		b.WriteString(body + "\n")
	}

	if v.Kannada != nil {
		section("Kannada", ScriptStyle.Render(*v.Kannada))
	}
	if v.Sanskrit != nil {
		section("Sanskrit", ScriptStyle.Render(*v.Sanskrit))
	}
	section("Transliteration", WrapText(v.Transliteration, width))
	section("Translation", WrapText(v.Translation(), width))

	if len(v.WordByWord) > 0 {
		var glosses []string
		for _, g := range v.WordByWord {
			glosses = append(glosses, ValueStyle.Bold(true).Render(g.Term)+"  "+DimStyle.Render(g.Meaning))
		}
		section("Word by word", strings.Join(glosses, "\n"))
	}
	if len(v.SuggestedQuestions) > 0 {
		var qs []string
		for _, q := range v.SuggestedQuestions {
			qs = append(qs, "  - "+q)
		}
		section("Suggested questions", strings.Join(qs, "\n"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// =============================================================================
// CHAPTER DETAILS
// =============================================================================

// DetailsCmd reads a chapter-detail document, the older per-verse format
// some endpoints still serve.
type DetailsCmd struct {
	URL    string `arg:"" name:"url" help:"Address of the chapter-detail document."`
	JSON   bool   `help:"Output as JSON."`
	Strict bool   `help:"Fail on service errors instead of printing an empty list."`
}

// Run fetches the document and prints each verse.
func (c *DetailsCmd) Run(app *App) error {
	if _, err := api.ParseURL(c.URL); err != nil {
		return NewValidationErrorWithExample("url", c.URL, "must be an absolute http(s) address",
			"https://madhwagpt2.onrender.com/api/gita/chapters/1")
	}
	lib, err := app.library(app.policy(c.Strict))
	if err != nil {
		return err
	}

	details, err := lib.ChapterDetails(app.context(), c.URL)
	if err != nil {
		return err
	}

	if c.JSON {
		return app.writeJSON(DetailsData{URL: c.URL, Total: len(details), Verses: details})
	}

	if len(details) == 0 {
		app.printf("%s\n", DimStyle.Render("No verses."))
		return nil
	}
	width := GetTerminalWidth()
	for i, d := range details {
		if i > 0 {
			app.printf("\n")
		}
		app.printf("%s\n", renderDetail(d, width))
	}
	return nil
}

// renderDetail lays out one legacy verse. Empty fields are skipped.
func renderDetail(d scripture.ChapterDetail, width int) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render(fmt.Sprintf("Verse %d", d.Verse)) + "\n")
	if d.Sanskrit != "" {
		b.WriteString(ScriptStyle.Render(d.Sanskrit) + "\n")
	}
	if d.Transliteration != "" {
		b.WriteString(DimStyle.Render(WrapText(d.Transliteration, width)) + "\n")
	}
	if d.EnglishTranslation != "" {
		b.WriteString(WrapText(d.EnglishTranslation, width) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
