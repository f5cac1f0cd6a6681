package view

import (
	"strings"

	"github.com/matheuskafuri/classicnews/internal/news"
)

type actionKind int

const (
	actSelectCategory actionKind = iota
	actSetSearch
	actGoToPage
	actNextPage
	actPrevPage
	actFirstPage
	actLastPage
	actNextSlide
	actPrevSlide
	actJumpSlide
)

// Action is a user intent applied to State.
type Action struct {
	kind actionKind
	text string
	n    int
}

func SelectCategory(name string) Action { return Action{kind: actSelectCategory, text: name} }
func SetSearch(term string) Action      { return Action{kind: actSetSearch, text: term} }
func GoToPage(n int) Action             { return Action{kind: actGoToPage, n: n} }
func NextPage() Action                  { return Action{kind: actNextPage} }
func PrevPage() Action                  { return Action{kind: actPrevPage} }
func FirstPage() Action                 { return Action{kind: actFirstPage} }
func LastPage() Action                  { return Action{kind: actLastPage} }
func NextSlide() Action                 { return Action{kind: actNextSlide} }
func PrevSlide() Action                 { return Action{kind: actPrevSlide} }
func JumpSlide(i int) Action            { return Action{kind: actJumpSlide, n: i} }

// IsSlide reports whether the action moves the slider.
func (a Action) IsSlide() bool {
	return a.kind == actNextSlide || a.kind == actPrevSlide || a.kind == actJumpSlide
}

// State is the portal view state. Page is 1-based and always within
// [1, TotalPages] of the current filter after Apply.
type State struct {
	Category string
	Search   string
	Page     int
	Slide    int
}

func NewState() State {
	return State{Category: BreakingNews, Page: 1}
}

// Apply returns the state after act, re-clamped against articles.
func (s State) Apply(act Action, articles []news.Article) State {
	slides := len(Slider(articles))

	switch act.kind {
	case actSelectCategory:
		s.Category = act.text
		s.Page = 1
	case actSetSearch:
		s.Search = strings.TrimSpace(act.text)
		s.Page = 1
	case actGoToPage:
		s.Page = act.n
	case actNextPage:
		s.Page++
	case actPrevPage:
		s.Page--
	case actFirstPage:
		s.Page = 1
	case actLastPage:
		s.Page = TotalPages(len(Filter(articles, s.Category, s.Search)))
	case actNextSlide:
		s.Slide = SlideAfter(s.Slide, slides)
	case actPrevSlide:
		s.Slide = SlideBefore(s.Slide, slides)
	case actJumpSlide:
		if act.n >= 0 && act.n < slides {
			s.Slide = act.n
		}
	}
	return s.Clamp(articles)
}

// Clamp fixes Page and Slide after the working set changed.
func (s State) Clamp(articles []news.Article) State {
	s.Page = ClampPage(s.Page, TotalPages(len(Filter(articles, s.Category, s.Search))))
	if n := len(Slider(articles)); s.Slide < 0 || s.Slide >= n {
		s.Slide = 0
	}
	return s
}
