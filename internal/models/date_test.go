package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_JSON(t *testing.T) {
	d := MustParseDate("2021-03-15")

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2021-03-15"` {
		t.Errorf("marshal = %s; want %q", b, "2021-03-15")
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip = %v; want %v", back, d)
	}

	if err := json.Unmarshal([]byte(`"15/03/2021"`), &back); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestDate_Scan(t *testing.T) {
	cases := []struct {
		name string
		src  any
		want string
	}{
		{"time", time.Date(2020, 1, 2, 15, 4, 5, 0, time.UTC), "2020-01-02"},
		{"string", "2019-12-31", "2019-12-31"},
		{"timestamp text", []byte("2018-07-01T00:00:00Z"), "2018-07-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tc.src); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if d.String() != tc.want {
				t.Errorf("Scan = %s; want %s", d, tc.want)
			}
		})
	}

	var d Date
	if err := d.Scan(12); err == nil {
		t.Error("expected error for int source")
	}
}

func TestExperience_Normalize(t *testing.T) {
	end := MustParseDate("2022-01-01")
	e := Experience{IsCurrent: true, EndDate: &end}
	e.Normalize()
	if e.EndDate != nil {
		t.Errorf("EndDate = %v; want nil for current position", e.EndDate)
	}

	past := Experience{IsCurrent: false, EndDate: &end}
	past.Normalize()
	if past.EndDate == nil {
		t.Error("EndDate cleared for past position")
	}

	current := true
	p := ExperiencePatch{IsCurrent: &current, EndDate: &end}
	p.Normalize()
	if p.EndDate != nil || !p.ClearEndDate {
		t.Errorf("patch not normalized: %+v", p)
	}
}

func TestMessageStatus(t *testing.T) {
	if MessageUnread.IsRead() {
		t.Error("unread reported as read")
	}
	if !MessageRead.IsRead() || !MessageReplied.IsRead() {
		t.Error("read and replied must both be read")
	}
	if MessageStatus("archived").Valid() {
		t.Error("unknown status reported valid")
	}
}
