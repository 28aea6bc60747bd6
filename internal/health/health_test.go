package health

import (
	"math/rand"
	"testing"

	"codehunter/internal/findings"
)

func repeat(level findings.Severity, n int) []findings.Finding {
	out := make([]findings.Finding, n)
	for i := range out {
		out[i] = findings.Finding{Level: level}
	}
	return out
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		findings []findings.Finding
		want     Report
	}{
		{
			name: "no findings",
			want: Report{Score: 100, Status: StatusHealthy},
		},
		{
			name:     "mixed",
			findings: append(append(repeat(findings.Critical, 1), repeat(findings.Warning, 2)...), repeat(findings.Info, 3)...),
			want:     Report{Critical: 1, Warnings: 2, Info: 3, Score: 67, Status: StatusWarning},
		},
		{
			name:     "clamped at zero",
			findings: repeat(findings.Critical, 6),
			want:     Report{Critical: 6, Score: 0, Status: StatusCritical},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Calculate(tt.findings); got != tt.want {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStatusBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  Status
	}{
		{100, StatusHealthy},
		{80, StatusHealthy},
		{79, StatusWarning},
		{50, StatusWarning},
		{49, StatusCritical},
		{0, StatusCritical},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.score); got != tt.want {
			t.Errorf("StatusFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestCalculate_BoundariesFromFindings(t *testing.T) {
	// 79 = 100 - 4*5 - 1, 80 = 100 - 4*5, 49 = 100 - 2*20 - 2*5 - 1, 50 = 100 - 2*20 - 2*5
	cases := []struct {
		fs   []findings.Finding
		want Status
	}{
		{append(repeat(findings.Warning, 4), repeat(findings.Info, 1)...), StatusWarning},
		{repeat(findings.Warning, 4), StatusHealthy},
		{append(append(repeat(findings.Critical, 2), repeat(findings.Warning, 2)...), repeat(findings.Info, 1)...), StatusCritical},
		{append(repeat(findings.Critical, 2), repeat(findings.Warning, 2)...), StatusWarning},
	}
	for i, c := range cases {
		if got := Calculate(c.fs).Status; got != c.want {
			t.Errorf("case %d: status = %s, want %s", i, got, c.want)
		}
	}
}

func TestCalculate_BoundedAndMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	levels := findings.Severities

	for trial := 0; trial < 200; trial++ {
		var fs []findings.Finding
		prev := Calculate(fs).Score
		for step := 0; step < 30; step++ {
			fs = append(fs, findings.Finding{Level: levels[rng.Intn(len(levels))]})
			score := Calculate(fs).Score
			if score < 0 || score > 100 {
				t.Fatalf("score %d out of range", score)
			}
			if score > prev {
				t.Fatalf("score increased from %d to %d after adding a finding", prev, score)
			}
			prev = score
		}
	}
}

func TestCalculate_OrderIndependent(t *testing.T) {
	fs := append(append(repeat(findings.Info, 3), repeat(findings.Critical, 1)...), repeat(findings.Warning, 2)...)
	want := Calculate(fs)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(fs), func(a, b int) { fs[a], fs[b] = fs[b], fs[a] })
		if got := Calculate(fs); got != want {
			t.Fatalf("shuffled result %+v differs from %+v", got, want)
		}
	}
}

func TestStatusAtLeast(t *testing.T) {
	if !StatusCritical.AtLeast(StatusWarning) {
		t.Error("CRITICAL should be at least WARNING")
	}
	if StatusHealthy.AtLeast(StatusWarning) {
		t.Error("HEALTHY should not be at least WARNING")
	}
	if !StatusWarning.AtLeast(StatusWarning) {
		t.Error("WARNING should be at least WARNING")
	}
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		score int
		n     int
	}{
		{95, 1},
		{90, 1},
		{80, 2},
		{75, 2},
		{74, 2},
	}
	for _, tt := range tests {
		if got := Recommendations(tt.score); len(got) != tt.n {
			t.Errorf("Recommendations(%d) = %v", tt.score, got)
		}
	}
	if Recommendations(74)[0] == Recommendations(80)[0] {
		t.Error("scores below 75 should get architecture advice")
	}
}
