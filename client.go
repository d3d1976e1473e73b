package renamed

// Client is the main entrypoint for the renamed.to API.
type Client struct {
	Config Config
	auth   Auth
	http   *httpClient

	Documents *DocumentsAPI
	Users     *UsersAPI
}

// NewClient constructs a Client using parameters or environment fallbacks.
func NewClient(apiKey, baseURL string, timeoutSeconds float64, maxRetries int) (*Client, error) {
	cfg, err := LoadConfig(apiKey, baseURL, timeoutSeconds, maxRetries)
	if err != nil {
		return nil, err
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithParams constructs a Client from structured configuration parameters.
func NewClientWithParams(params ConfigParams) (*Client, error) {
	cfg, err := LoadConfigWithParams(params)
	if err != nil {
		return nil, err
	}
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig builds a Client from a fully parsed Config.
func NewClientWithConfig(cfg Config) (*Client, error) {
	auth := newAuth(cfg)
	httpClient := newHTTPClient(cfg, auth)
	httpClient.logf("Client initialized (api_key=%s)", maskAPIKey(cfg.APIKey))

	return &Client{
		Config:    cfg,
		auth:      auth,
		http:      httpClient,
		Documents: newDocumentsAPI(cfg, httpClient),
		Users:     newUsersAPI(httpClient),
	}, nil
}

// Close releases HTTP resources.
func (c *Client) Close() {
	if c == nil || c.http == nil {
		return
	}
	c.http.close()
}
