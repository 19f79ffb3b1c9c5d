package stocks

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"cryptopulse/internal/adapters/config"
	domain "cryptopulse/internal/domain/stocks"
	"cryptopulse/pkg/errors"
	"cryptopulse/pkg/logger"
)

// date layouts accepted in the snapshot files
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-01-2006",
}

// DataService serves stock market data loaded from CSV snapshots.
// Missing or unreadable files degrade to empty tables, the service
// itself never fails to construct.
type DataService struct {
	historical []domain.PriceBar
	news       []domain.NewsItem
	gainers    []domain.Mover
	losers     []domain.Mover
	log        *logger.Logger

	now func() time.Time
}

// NewDataService loads all snapshot files from the configured asset directory
func NewDataService(cfg config.StocksConfig) *DataService {
	s := &DataService{
		log: logger.Get().With("component", "stocks_data"),
		now: time.Now,
	}

	s.historical = s.loadHistorical(filepath.Join(cfg.AssetDir, cfg.HistoricalFile))
	s.news = s.loadNews(filepath.Join(cfg.AssetDir, cfg.NewsFile))
	s.gainers = s.loadMovers(filepath.Join(cfg.AssetDir, cfg.GainersFile), false)
	s.losers = s.loadMovers(filepath.Join(cfg.AssetDir, cfg.LosersFile), true)

	s.log.Info("Loaded stock snapshots",
		"historical_rows", len(s.historical),
		"news_rows", len(s.news),
		"gainers", len(s.gainers),
		"losers", len(s.losers),
	)
	return s
}

// csvTable reads a CSV file into header-keyed rows
func (s *DataService) csvTable(path string) ([]map[string]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		s.log.Error("Failed to open snapshot file", "path", path, "error", err)
		return nil, false
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		s.log.Error("Failed to read snapshot header", "path", path, "error", err)
		return nil, false
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.log.Warn("Skipping malformed snapshot row", "path", path, "error", err)
			continue
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, true
}

func (s *DataService) loadHistorical(path string) []domain.PriceBar {
	rows, ok := s.csvTable(path)
	if !ok {
		return nil
	}

	bars := make([]domain.PriceBar, 0, len(rows))
	for _, row := range rows {
		date, err := parseDate(row["Date"])
		if err != nil {
			continue
		}
		bars = append(bars, domain.PriceBar{
			Symbol: row["Symbol"],
			Date:   date,
			Open:   parseFloat(row["Open"]),
			High:   parseFloat(row["High"]),
			Low:    parseFloat(row["Low"]),
			Close:  parseFloat(row["Close"]),
			Volume: parseFloat(row["Volume"]),
		})
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})
	return bars
}

func (s *DataService) loadNews(path string) []domain.NewsItem {
	rows, ok := s.csvTable(path)
	if !ok {
		return nil
	}

	items := make([]domain.NewsItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, domain.NewsItem{
			Company:     row["Company"],
			Headline:    row["Headline"],
			Source:      row["Source"],
			PublishedAt: row["PublishedAt"],
			URL:         row["URL"],
		})
	}

	// newest first
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt > items[j].PublishedAt
	})
	return items
}

func (s *DataService) loadMovers(path string, losers bool) []domain.Mover {
	rows, ok := s.csvTable(path)
	if !ok {
		return nil
	}

	movers := make([]domain.Mover, 0, len(rows))
	for _, row := range rows {
		change := parseFloat(row["Change (%)"])
		if losers && change > 0 {
			change = -change
		}
		movers = append(movers, domain.Mover{
			Company:       row["Company"],
			Symbol:        row["Symbol"],
			Price:         parseFloat(row["Price"]),
			ChangePercent: change,
		})
	}
	return movers
}

// TopGainers returns the first limit rows of the gainers snapshot
func (s *DataService) TopGainers(limit int) []domain.Mover {
	return head(s.gainers, limit)
}

// TopLosers returns the first limit rows of the losers snapshot
func (s *DataService) TopLosers(limit int) []domain.Mover {
	return head(s.losers, limit)
}

// AvailableSymbols lists the distinct symbols in the historical snapshot
func (s *DataService) AvailableSymbols() []string {
	seen := map[string]struct{}{}
	var symbols []string
	for _, bar := range s.historical {
		if _, ok := seen[bar.Symbol]; !ok {
			seen[bar.Symbol] = struct{}{}
			symbols = append(symbols, bar.Symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}

// PriceHistory returns the recent bars for a symbol with rolling means
// attached. The 7 day mean needs more than 7 bars, the 30 day mean more
// than 30.
func (s *DataService) PriceHistory(symbol string, days int) []domain.PriceBar {
	cutoff := s.now().AddDate(0, 0, -days)

	var bars []domain.PriceBar
	for _, bar := range s.historical {
		if bar.Symbol == symbol && !bar.Date.Before(cutoff) {
			bars = append(bars, bar)
		}
	}
	if len(bars) == 0 {
		return nil
	}

	if len(bars) > 7 {
		applyRollingMean(bars, 7, func(b *domain.PriceBar, v float64) { b.MA7 = &v })
	}
	if len(bars) > 30 {
		applyRollingMean(bars, 30, func(b *domain.PriceBar, v float64) { b.MA30 = &v })
	}
	return bars
}

// applyRollingMean sets the trailing mean of closes once the window is full
func applyRollingMean(bars []domain.PriceBar, window int, set func(*domain.PriceBar, float64)) {
	var sum float64
	for i := range bars {
		sum += bars[i].Close
		if i >= window {
			sum -= bars[i-window].Close
		}
		if i >= window-1 {
			set(&bars[i], sum/float64(window))
		}
	}
}

// News returns headlines, optionally filtered by company. The filter
// matches the company column first and falls back to headline text.
func (s *DataService) News(company string, limit int) []domain.NewsItem {
	if company == "" {
		return head(s.news, limit)
	}

	needle := strings.ToLower(company)
	var matched []domain.NewsItem
	for _, item := range s.news {
		if strings.Contains(strings.ToLower(item.Company), needle) {
			matched = append(matched, item)
		}
	}
	if len(matched) == 0 {
		for _, item := range s.news {
			if strings.Contains(strings.ToLower(item.Headline), needle) {
				matched = append(matched, item)
			}
		}
	}
	return head(matched, limit)
}

// Analysis summarizes the recent trend and volatility for a symbol
func (s *DataService) Analysis(symbol string) (*domain.Analysis, error) {
	bars := s.PriceHistory(symbol, 90)
	if len(bars) == 0 {
		return nil, errors.ErrNoData
	}

	latest := bars[len(bars)-1]
	currentPrice := latest.Close
	ma7 := latest.MA7
	ma30 := latest.MA30

	priceVsMA7 := "below"
	if ma7 != nil && currentPrice > *ma7 {
		priceVsMA7 = "above"
	}
	priceVsMA30 := "below"
	if ma30 != nil && currentPrice > *ma30 {
		priceVsMA30 = "above"
	}

	var volatility float64
	if len(bars) > 5 {
		volatility = dailyReturnStd(bars) * 100
	}

	trend := classifyTrend(bars, currentPrice, ma7, ma30, priceVsMA7, priceVsMA30)

	return &domain.Analysis{
		Symbol:       symbol,
		CurrentPrice: currentPrice,
		MovingAverages: domain.MovingAverages{
			MA7:         ma7,
			MA30:        ma30,
			PriceVsMA7:  priceVsMA7,
			PriceVsMA30: priceVsMA30,
		},
		VolatilityPercent: volatility,
		Trend:             trend,
		DataPoints:        len(bars),
	}, nil
}

func classifyTrend(bars []domain.PriceBar, currentPrice float64, ma7, ma30 *float64, priceVsMA7, priceVsMA30 string) string {
	if len(bars) <= 10 {
		return domain.TrendNeutral
	}

	if ma7 != nil && ma30 != nil {
		switch {
		case priceVsMA7 == "above" && priceVsMA30 == "above" && *ma7 > *ma30:
			return domain.TrendStrongUptrend
		case priceVsMA7 == "above" && priceVsMA30 == "above":
			return domain.TrendUptrend
		case priceVsMA7 == "below" && priceVsMA30 == "below" && *ma7 < *ma30:
			return domain.TrendStrongDowntrend
		case priceVsMA7 == "below" && priceVsMA30 == "below":
			return domain.TrendDowntrend
		default:
			return domain.TrendNeutral
		}
	}

	// Without full windows, fall back to the five day move
	if len(bars) >= 5 {
		fiveDaysAgo := bars[len(bars)-5].Close
		switch {
		case currentPrice > fiveDaysAgo*1.05:
			return domain.TrendUptrend
		case currentPrice < fiveDaysAgo*0.95:
			return domain.TrendDowntrend
		}
	}
	return domain.TrendNeutral
}

// dailyReturnStd is the sample standard deviation of daily returns
func dailyReturnStd(bars []domain.PriceBar) float64 {
	var returns []float64
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev == 0 {
			continue
		}
		returns = append(returns, (bars[i].Close-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var ss float64
	for _, r := range returns {
		d := r - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(returns)-1))
}

func head[T any](items []T, limit int) []T {
	if limit <= 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}

func parseFloat(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
