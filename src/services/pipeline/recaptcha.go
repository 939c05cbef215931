package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const googleVerifyEndpoint = "https://www.google.com/recaptcha/api/siteverify"

// GoogleVerifier checks recaptcha responses against Google's siteverify API.
// Without a secret every check fails: an enabled recaptcha with no secret
// must not wave submissions through.
type GoogleVerifier struct {
	Secret   string
	Endpoint string
	Client   *http.Client
}

func NewGoogleVerifierFromEnv() *GoogleVerifier {
	return &GoogleVerifier{
		Secret:   os.Getenv("RECAPTCHA_SECRET_KEY"),
		Endpoint: googleVerifyEndpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *GoogleVerifier) Verify(ctx context.Context, token, remoteIP string) bool {
	if g.Secret == "" || token == "" {
		return false
	}

	endpoint := g.Endpoint
	if endpoint == "" {
		endpoint = googleVerifyEndpoint
	}
	form := url.Values{
		"secret":   {g.Secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Println("⚠️ ReCAPTCHA verification request failed:", err)
		return false
	}
	defer resp.Body.Close()

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}
	return body.Success
}
