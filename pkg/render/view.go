package render

import "github.com/matzehuels/stockcards/pkg/card"

// =============================================================================
// Surge
// =============================================================================

// SurgeStock is one stock line on a surge card.
type SurgeStock struct {
	Name       string `json:"name"`
	ChangeRate string `json:"change_rate"`
	Issue      string `json:"issue"`
}

// SurgeCard is one card as the surge template reads it.
type SurgeCard struct {
	CardType  string       `json:"card_type"`
	GroupName string       `json:"group_name"`
	MainIssue string       `json:"main_issue"`
	Stocks    []SurgeStock `json:"stocks"`
}

// SurgeView converts one page of cards.
func SurgeView(page []card.Card) []SurgeCard {
	out := make([]SurgeCard, 0, len(page))
	for _, c := range page {
		v := SurgeCard{
			CardType:  c.Kind.String(),
			GroupName: c.GroupName,
			MainIssue: c.MainIssue,
			Stocks:    make([]SurgeStock, 0, len(c.Stocks)),
		}
		for _, s := range c.Stocks {
			v.Stocks = append(v.Stocks, SurgeStock{Name: s.Name, ChangeRate: s.ChangeRate, Issue: s.Issue})
		}
		out = append(out, v)
	}
	return out
}

// FlattenSurge lists stock names in display order.
func FlattenSurge(view []SurgeCard) []string {
	var names []string
	for _, c := range view {
		for _, s := range c.Stocks {
			names = append(names, s.Name)
		}
	}
	return names
}

// =============================================================================
// Ranking
// =============================================================================

// RankingStock is one row of a ranking group. Numbers are preformatted.
type RankingStock struct {
	StockName     string `json:"stock_name"`
	ChangeRateStr string `json:"change_rate_str"`
	Volume        string `json:"volume"`
	Content       string `json:"content"`
}

// RankingGroup is one material block as the ranking template reads it.
type RankingGroup struct {
	Material string         `json:"material"`
	Color    string         `json:"color"`
	IsSingle bool           `json:"is_single"`
	Stocks   []RankingStock `json:"stocks"`
}

// RankingView converts one page of material groups.
func RankingView(page []card.MaterialGroup) []RankingGroup {
	out := make([]RankingGroup, 0, len(page))
	for _, g := range page {
		v := RankingGroup{
			Material: g.Material,
			Color:    g.Color,
			IsSingle: g.Single,
			Stocks:   make([]RankingStock, 0, len(g.Stocks)),
		}
		for _, s := range g.Stocks {
			v.Stocks = append(v.Stocks, RankingStock{
				StockName:     s.Name,
				ChangeRateStr: s.ChangeRateText,
				Volume:        s.Volume,
				Content:       s.Content,
			})
		}
		out = append(out, v)
	}
	return out
}

// FlattenRanking lists stock names in display order.
func FlattenRanking(view []RankingGroup) []string {
	var names []string
	for _, g := range view {
		for _, s := range g.Stocks {
			names = append(names, s.StockName)
		}
	}
	return names
}

// =============================================================================
// Answer sheet
// =============================================================================

// AnswerStock is one stock as the answer-sheet template reads it.
type AnswerStock struct {
	Name        string `json:"종목명"`
	Keyword     string `json:"핵심키워드"`
	AddedOn     string `json:"편입일"`
	Status      string `json:"상태"`
	Country     string `json:"국가"`
	Category    string `json:"대분류"`
	Subcategory string `json:"소분류"`
	Schedule    string `json:"핵심일정"`
}

// AnswerCategory is one category block within a country.
type AnswerCategory struct {
	Category string        `json:"대분류"`
	Stocks   []AnswerStock `json:"종목들"`
}

// AnswerCountry is one country block of the trend section.
type AnswerCountry struct {
	Country    string           `json:"국가"`
	Categories []AnswerCategory `json:"카테고리들"`
}

// AnswerSheet is the whole answer-sheet document.
type AnswerSheet struct {
	Trends     []AnswerCountry `json:"시대흐름"`
	SuperPicks []AnswerStock   `json:"슈퍼픽"`
	Schedules  []AnswerStock   `json:"일정매매"`
}

// AnswerSheetView converts the answer sheet. Empty sections encode as [].
func AnswerSheetView(s card.AnswerSheet) AnswerSheet {
	out := AnswerSheet{
		Trends:     make([]AnswerCountry, 0, len(s.Trends)),
		SuperPicks: answerStocks(s.SuperPicks),
		Schedules:  answerStocks(s.Schedules),
	}
	for _, g := range s.Trends {
		c := AnswerCountry{Country: g.Country, Categories: make([]AnswerCategory, 0, len(g.Categories))}
		for _, cat := range g.Categories {
			c.Categories = append(c.Categories, AnswerCategory{
				Category: cat.Category,
				Stocks:   answerStocks(cat.Items),
			})
		}
		out.Trends = append(out.Trends, c)
	}
	return out
}

func answerStocks(items []card.AnswerItem) []AnswerStock {
	out := make([]AnswerStock, 0, len(items))
	for _, it := range items {
		out = append(out, AnswerStock{
			Name:        it.Name,
			Keyword:     it.Keyword,
			AddedOn:     it.AddedOn,
			Status:      it.Status,
			Country:     it.Country,
			Category:    it.Category,
			Subcategory: it.Subcategory,
			Schedule:    it.Schedule,
		})
	}
	return out
}

// FlattenAnswerSheet lists stock names section by section: trends, then
// super picks, then schedule trades.
func FlattenAnswerSheet(view AnswerSheet) []string {
	var names []string
	for _, c := range view.Trends {
		for _, cat := range c.Categories {
			for _, s := range cat.Stocks {
				names = append(names, s.Name)
			}
		}
	}
	for _, s := range view.SuperPicks {
		names = append(names, s.Name)
	}
	for _, s := range view.Schedules {
		names = append(names, s.Name)
	}
	return names
}
