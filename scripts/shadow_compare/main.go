// Command shadow_compare replays a fixed set of read-only requests against
// the Go gateway and the legacy Flask deployment and reports every
// divergence in status or body. It exits non-zero when a critical probe
// diverges, so it can gate a cutover pipeline.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type probe struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type probeFile struct {
	Probes []probe `json:"probes"`
}

type result struct {
	Probe          probe
	GoStatus       int
	LegacyStatus   int
	StatusMatch    bool
	BodyMatch      bool
	Err            error
	GoDuration     time.Duration
	LegacyDuration time.Duration
}

// volatileFields are store-assigned and expected to differ between the two
// deployments; they are stripped before body comparison.
var volatileFields = map[string]bool{
	"objectId":   true,
	"created":    true,
	"updated":    true,
	"user-token": true,
}

func main() {
	var (
		goBase     string
		legacyBase string
		probesPath string
		token      string
		timeout    time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8000", "Go gateway base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5000", "legacy Flask base URL")
	flag.StringVar(&probesPath, "probes", filepath.Join("scripts", "shadow_compare", "probes.json"), "path to JSON probes file")
	flag.StringVar(&token, "token", os.Getenv("SHADOW_USER_TOKEN"), "user-token forwarded on every probe")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	probes, err := loadProbes(probesPath)
	if err != nil {
		log.Fatalf("failed to load probes: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		results  []result
		breaking int
		drift    int
	)

	for _, p := range probes {
		res := compare(client, goBase, legacyBase, token, p)
		diverged := res.Err != nil || !res.StatusMatch || !res.BodyMatch
		if diverged {
			if p.Critical {
				breaking++
			} else {
				drift++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking diffs: %d, Non-critical diffs: %d\n", breaking, drift)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadProbes(path string) ([]probe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf probeFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	if len(pf.Probes) == 0 {
		return nil, fmt.Errorf("no probes defined in %s", path)
	}
	return pf.Probes, nil
}

func compare(client *http.Client, goBase, legacyBase, token string, p probe) result {
	res := result{Probe: p}

	goStatus, goBody, goDur, err := perform(client, goBase, token, p)
	if err != nil {
		res.Err = fmt.Errorf("go request failed: %w", err)
		return res
	}
	legacyStatus, legacyBody, legacyDur, err := perform(client, legacyBase, token, p)
	if err != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}

	res.GoStatus = goStatus
	res.LegacyStatus = legacyStatus
	res.GoDuration = goDur
	res.LegacyDuration = legacyDur
	res.StatusMatch = goStatus == legacyStatus
	res.BodyMatch = bodiesEqual(goBody, legacyBody)
	return res
}

func perform(client *http.Client, base, token string, p probe) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(p.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := p.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	if token != "" {
		req.Header.Set("user-token", token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

// normalize strips volatile fields and collapses whole floats to ints so
// that semantically equal JSON bodies compare equal.
func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			if volatileFields[k] {
				delete(val, k)
				continue
			}
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []result) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Probe.Method, res.Probe.Path)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  Go: %d (%s) | Legacy: %d (%s)\n", res.GoStatus, res.GoDuration, res.LegacyStatus, res.LegacyDuration)
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Probe.Critical)
	}
}
