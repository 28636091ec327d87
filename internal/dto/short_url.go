package dto

// CreateShortURLRequest 缺少 url 时不在绑定阶段报错，统一返回 invalid url
type CreateShortURLRequest struct {
	URL string `form:"url" json:"url"`
}

type ShortURLResponse struct {
	OriginalURL string `json:"original_url"`
	ShortURL    int64  `json:"short_url"`
}

type DailyVisits struct {
	Date   string `json:"date"`
	Visits int64  `json:"visits"`
}

type ShortURLStatsResponse struct {
	OriginalURL string        `json:"original_url"`
	ShortURL    int64         `json:"short_url"`
	Visits      int64         `json:"visits"`
	Daily       []DailyVisits `json:"daily"`
}
