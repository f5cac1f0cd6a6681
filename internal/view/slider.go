package view

import "github.com/matheuskafuri/classicnews/internal/news"

// SliderSize is the number of newest articles in the breaking-news slider.
const SliderSize = 7

// Slider returns the slides: the newest SliderSize articles.
func Slider(articles []news.Article) []news.Article {
	return articles[:min(SliderSize, len(articles))]
}

func SlideAfter(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

func SlideBefore(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}
