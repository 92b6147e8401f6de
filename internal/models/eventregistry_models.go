package models

// EventRegistryArticlesRequest is the getArticles payload sent to EventRegistry.
type EventRegistryArticlesRequest struct {
	Action               string   `json:"action"`
	Keyword              []string `json:"keyword"`
	Lang                 []string `json:"lang"`
	KeywordLoc           string   `json:"keywordLoc"`
	IgnoreSourceGroupURI string   `json:"ignoreSourceGroupUri"`
	ArticlesPage         int      `json:"articlesPage"`
	ArticlesCount        int      `json:"articlesCount"`
	ArticlesSortBy       string   `json:"articlesSortBy"`
	ArticlesSortByAsc    bool     `json:"articlesSortByAsc"`
	DataType             []string `json:"dataType"`
	ResultType           string   `json:"resultType"`
	APIKey               string   `json:"apiKey"`
}
