package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyHTML = `<!doctype html>
<html><head>
<title>  Iyo Citrus
 Farm </title>
<meta name="description" content="Mikan growers in Yawatahama">
<style>body { color: red }</style>
</head>
<body>
<nav>Home About</nav>
<h1>About us</h1>
<p>We grow   citrus   on the hills.</p>
<script>var tracking = true;</script>
<footer>copyright</footer>
</body></html>`

func TestFetchExtractsText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(companyHTML))
	}))
	defer srv.Close()

	f := NewFetcher(Config{UserAgent: "test-agent", Timeout: 5 * time.Second, AllowPrivateNetworks: true})
	page, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Iyo Citrus Farm", page.Title)
	assert.Equal(t, "Mikan growers in Yawatahama", page.Description)
	assert.Contains(t, page.Body, "We grow citrus on the hills.")
	assert.NotContains(t, page.Body, "tracking")
	assert.NotContains(t, page.Body, "copyright")
	assert.Contains(t, page.Text(), "タイトル: Iyo Citrus Farm")
}

func TestFetchTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>" + strings.Repeat("あ", 50) + "</p></body></html>"))
	}))
	defer srv.Close()

	page, err := NewFetcher(Config{MaxChars: 10, AllowPrivateNetworks: true}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("あ", 10), page.Body)
}

func TestFetchErrors(t *testing.T) {
	f := NewFetcher(Config{AllowPrivateNetworks: true})

	_, err := f.Fetch(context.Background(), "ftp://example.com")
	assert.Error(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err = f.Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestFetchRefusesInternalAddresses(t *testing.T) {
	f := NewFetcher(Config{Timeout: 2 * time.Second})
	for _, target := range []string{
		"http://localhost/",
		"http://127.0.0.1:8080/admin",
		"http://10.0.0.5/",
		"http://192.168.1.1/",
		"http://169.254.169.254/latest/meta-data/",
		"http://[::1]/",
		"http://0.0.0.0/",
	} {
		t.Run(target, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), target)
			assert.ErrorIs(t, err, ErrBlockedAddress)
		})
	}
}

func TestFetchRefusesRedirectToInternalAddress(t *testing.T) {
	var hit atomic.Bool
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit.Store(true)
		_, _ = w.Write([]byte("<html><body>secret</body></html>"))
	}))
	defer internal.Close()

	public := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, internal.URL, http.StatusFound)
	}))
	defer public.Close()

	pu, err := url.Parse(public.URL)
	require.NoError(t, err)
	publicPort := urlPort(pu)

	// only the first server counts as a public address
	f := NewFetcher(Config{Timeout: 2 * time.Second})
	f.allowed = func(ap netip.AddrPort) bool { return ap.Port() == publicPort }

	_, err = f.Fetch(context.Background(), public.URL)
	assert.Error(t, err)
	assert.False(t, hit.Load())
}

func TestIsPublic(t *testing.T) {
	for addr, want := range map[string]bool{
		"93.184.216.34":    true,
		"2606:4700::1111":  true,
		"127.0.0.1":        false,
		"10.1.2.3":         false,
		"172.16.0.1":       false,
		"100.64.0.1":       false,
		"169.254.169.254":  false,
		"::ffff:127.0.0.1": false,
		"fe80::1":          false,
		"fd00::1":          false,
		"224.0.0.1":        false,
	} {
		assert.Equal(t, want, isPublic(netip.MustParseAddr(addr)), addr)
	}
}
