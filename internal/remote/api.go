package remote

import (
	"context"
	"net/url"

	"github.com/mmcdole/xtconsole/internal/domain"
)

// Admin API paths
const (
	pathSettings  = "/admin/settings.json"
	pathPlaylists = "/admin/playlists"
	pathXtreams   = "/admin/xtreams"
	pathConvert   = "/admin/convert"
)

// API implements domain.Backend over the admin endpoints
type API struct {
	client *Client
}

// NewAPI wraps a client with the typed admin endpoints
func NewAPI(client *Client) *API {
	return &API{client: client}
}

// Origin returns the backend origin, used to build retrieval links
func (a *API) Origin() string {
	return a.client.BaseURL()
}

// GetSettings fetches the settings record
func (a *API) GetSettings(ctx context.Context) (domain.Settings, error) {
	var env settingsEnvelope
	if err := a.client.FetchJSON(ctx, pathSettings, &env); err != nil {
		return domain.Settings{}, err
	}
	return mapSettings(env.Settings), nil
}

// SaveSettings replaces the settings record
func (a *API) SaveSettings(ctx context.Context, s domain.Settings) error {
	return a.client.PostJSON(ctx, pathSettings, settingsToDTO(s), nil)
}

// ListPlaylists fetches every playlist
func (a *API) ListPlaylists(ctx context.Context) ([]*domain.Playlist, error) {
	var env playlistsEnvelope
	if err := a.client.FetchJSON(ctx, pathPlaylists+".json", &env); err != nil {
		return nil, err
	}
	return mapPlaylists(env.Items), nil
}

// CreatePlaylist creates a playlist and returns the server-issued id
func (a *API) CreatePlaylist(ctx context.Context, p domain.PlaylistCreate) (string, error) {
	var resp createdResponse
	if err := a.client.PostJSON(ctx, pathPlaylists, playlistCreateToDTO(p), &resp); err != nil {
		return "", err
	}
	return resp.createdID(), nil
}

// UpdatePlaylist applies a partial update to a playlist
func (a *API) UpdatePlaylist(ctx context.Context, id string, u domain.PlaylistUpdate) error {
	return a.client.PostJSON(ctx, resourcePath(pathPlaylists, id)+"/update", playlistUpdateToDTO(u), nil)
}

// DeletePlaylist removes a playlist
func (a *API) DeletePlaylist(ctx context.Context, id string) error {
	return a.client.DeleteResource(ctx, resourcePath(pathPlaylists, id), nil)
}

// ListXtreams fetches every Xtream account
func (a *API) ListXtreams(ctx context.Context) ([]*domain.XtreamAccount, error) {
	var env xtreamsEnvelope
	if err := a.client.FetchJSON(ctx, pathXtreams+".json", &env); err != nil {
		return nil, err
	}
	return mapXtreams(env.Items), nil
}

// CreateXtream creates an account and returns the server-issued id
func (a *API) CreateXtream(ctx context.Context, d domain.XtreamDraft) (string, error) {
	var resp createdResponse
	if err := a.client.PostJSON(ctx, pathXtreams, xtreamDraftToDTO(d), &resp); err != nil {
		return "", err
	}
	return resp.createdID(), nil
}

// UpdateXtream sends a full or partial account update
func (a *API) UpdateXtream(ctx context.Context, id string, u domain.XtreamUpdate) error {
	return a.client.PostJSON(ctx, resourcePath(pathXtreams, id)+"/update", xtreamUpdateToBody(u), nil)
}

// DeleteXtream removes an account
func (a *API) DeleteXtream(ctx context.Context, id string) error {
	return a.client.DeleteResource(ctx, resourcePath(pathXtreams, id), nil)
}

// Convert runs a one-shot conversion and returns the playlist file bytes
func (a *API) Convert(ctx context.Context, sourceURL string, mode domain.Mode) ([]byte, error) {
	return a.client.PostForFile(ctx, pathConvert, convertRequest{URL: sourceURL, Mode: string(mode)})
}

func resourcePath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// createdID handles both {"id": ...} and {"item": {"id": ...}} responses
func (r createdResponse) createdID() string {
	if r.ID != "" {
		return r.ID
	}
	if r.Item != nil {
		return r.Item.ID
	}
	return ""
}

var _ domain.Backend = (*API)(nil)
