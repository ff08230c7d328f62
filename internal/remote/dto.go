package remote

// Wire formats of the admin API

type settingsDTO struct {
	StreamResolverURL string `json:"stream_resolver_url"`
	MediaflowURL      string `json:"mediaflow_url"`
	APIPassword       string `json:"api_password"`
}

type settingsEnvelope struct {
	Settings settingsDTO `json:"settings"`
}

type playlistDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Mode        string `json:"mode"`
	EveryHours  int    `json:"every_hours"`
	ResolverURL string `json:"resolver_url"`
	LastRefresh *int64 `json:"last_refresh"`
}

type playlistsEnvelope struct {
	Items []playlistDTO `json:"items"`
}

type playlistCreateDTO struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Mode        string `json:"mode"`
	EveryHours  int    `json:"every_hours"`
	ResolverURL string `json:"resolver_url,omitempty"`
}

type playlistUpdateDTO struct {
	Name        *string `json:"name,omitempty"`
	URL         *string `json:"url,omitempty"`
	EveryHours  *int    `json:"every_hours,omitempty"`
	ResolverURL *string `json:"resolver_url,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`
}

type xtreamDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	EveryHours    int      `json:"every_hours"`
	LastRefresh   *int64   `json:"last_refresh"`
	LiveListIDs   []string `json:"live_list_ids"`
	MovieListIDs  []string `json:"movie_list_ids"`
	SeriesListIDs []string `json:"series_list_ids"`
	MixedListIDs  []string `json:"mixed_list_ids"`
}

type xtreamsEnvelope struct {
	Items []xtreamDTO `json:"items"`
}

// xtreamWriteDTO is used for create and for full updates; every field is sent
type xtreamWriteDTO struct {
	Name          string   `json:"name"`
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	EveryHours    int      `json:"every_hours"`
	LiveListIDs   []string `json:"live_list_ids"`
	MovieListIDs  []string `json:"movie_list_ids"`
	SeriesListIDs []string `json:"series_list_ids"`
	MixedListIDs  []string `json:"mixed_list_ids"`
	Refresh       bool     `json:"refresh,omitempty"`
}

type xtreamPatchDTO struct {
	EveryHours *int `json:"every_hours,omitempty"`
	Refresh    bool `json:"refresh,omitempty"`
}

type createdResponse struct {
	OK   bool   `json:"ok"`
	ID   string `json:"id"`
	Item *struct {
		ID string `json:"id"`
	} `json:"item"`
}

type convertRequest struct {
	URL  string `json:"url"`
	Mode string `json:"mode"`
}
