package catalog

import "slices"

// StockCapacity is the maximum number of distinct articles a Stock holds.
const StockCapacity = 10

// Stock is a bounded, ordered collection of distinct articles.
type Stock struct {
	name     string
	articles []*Article
}

// NewStock returns an empty stock.
func NewStock(name string) *Stock {
	return &Stock{
		name:     name,
		articles: make([]*Article, 0, StockCapacity),
	}
}

func (s *Stock) Name() string  { return s.name }
func (s *Stock) Count() int    { return len(s.articles) }
func (s *Stock) IsFull() bool  { return len(s.articles) >= StockCapacity }
func (s *Stock) IsEmpty() bool { return len(s.articles) == 0 }

// FindIndex returns the position of the article with the same reference,
// or -1.
func (s *Stock) FindIndex(article *Article) int {
	for i, a := range s.articles {
		if SameArticle(a, article) {
			return i
		}
	}
	return -1
}

// Add appends the article. It does nothing when the stock is full or
// already holds an article with that reference.
func (s *Stock) Add(article *Article) {
	if article == nil || s.IsFull() || s.FindIndex(article) != -1 {
		return
	}
	s.articles = append(s.articles, article)
}

// Remove drops the article, keeping the order of the others.
func (s *Stock) Remove(article *Article) {
	i := s.FindIndex(article)
	if i == -1 {
		return
	}
	s.articles = slices.Delete(s.articles, i, i+1)
}

// FindByReference returns the article with that reference, or nil.
func (s *Stock) FindByReference(ref int) *Article {
	for _, a := range s.articles {
		if a.reference == ref {
			return a
		}
	}
	return nil
}

// ListAll returns a copy of the contained articles in insertion order.
func (s *Stock) ListAll() []*Article {
	out := make([]*Article, len(s.articles))
	copy(out, s.articles)
	return out
}

// FindByCategory returns the articles whose category is exactly category.
// The result is never nil.
func (s *Stock) FindByCategory(category string) []*Article {
	out := make([]*Article, 0)
	for _, a := range s.articles {
		if a.category == category {
			out = append(out, a)
		}
	}
	return out
}
