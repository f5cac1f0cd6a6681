package tui

import (
	"github.com/matheuskafuri/classicnews/internal/news"
	"github.com/matheuskafuri/classicnews/internal/weather"
)

type splashDoneMsg struct{}

type articlesLoadedMsg struct {
	articles []news.Article
	err      error
}

// slideTickMsg and weatherTickMsg carry the schedule sequence that produced
// them; a tick from a cancelled schedule is dropped.
type slideTickMsg struct {
	seq int
}

type weatherTickMsg struct {
	seq int
}

type weatherMsg struct {
	res weather.Result
}

type summaryMsg struct {
	seq  int
	text string
	err  error
}

type statusErrMsg struct {
	err error
}
