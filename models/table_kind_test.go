package models

import "testing"

func TestParseTableKind(t *testing.T) {
	for _, name := range []string{"wf_open", "wf_closed", "non_wf_open", "non_wf_closed"} {
		kind, err := ParseTableKind(name)
		if err != nil {
			t.Fatalf("ParseTableKind(%q): %v", name, err)
		}
		if kind.TableName() != name {
			t.Errorf("round trip failed: %q -> %q", name, kind.TableName())
		}
	}

	for _, name := range []string{"", "wf_open ", "users", "wf-open"} {
		if _, err := ParseTableKind(name); err == nil {
			t.Errorf("ParseTableKind(%q): expected error", name)
		}
	}
}

func TestTableKindCounterparts(t *testing.T) {
	if WfOpen.Closed() != WfClosed || NonWfOpen.Closed() != NonWfClosed {
		t.Error("open kinds must map to their closed counterparts")
	}
	if WfClosed.Open() != WfOpen || NonWfClosed.Open() != NonWfOpen {
		t.Error("closed kinds must map to their open counterparts")
	}
	if !WfOpen.IsOpen() || WfClosed.IsOpen() {
		t.Error("IsOpen misclassifies kinds")
	}
}

func TestTableKindColumns(t *testing.T) {
	// The batch number lives only in the closed tables.
	for _, kind := range []TableKind{WfOpen, NonWfOpen} {
		if kind.HasColumn("shipment_batch_no") {
			t.Errorf("%s must not carry shipment_batch_no", kind)
		}
	}
	for _, kind := range ClosedTableKinds() {
		if !kind.HasColumn("shipment_batch_no") {
			t.Errorf("%s must carry shipment_batch_no", kind)
		}
	}

	// Family-specific columns stay within their family.
	if NonWfOpen.HasColumn("wfsz_shipping_mode") || NonWfClosed.HasColumn("chinese_name") {
		t.Error("WF-only columns leaked into the non-WF family")
	}
	if WfOpen.HasColumn("shipping_mode") || WfOpen.HasColumn("qc_result") {
		t.Error("non-WF-only columns leaked into the WF family")
	}

	// qc_result exists only on the non-WF open table.
	if NonWfClosed.HasColumn("qc_result") {
		t.Error("qc_result must not exist on non_wf_closed")
	}

	// update_at is intentionally absent everywhere: the database default
	// maintains it.
	for _, kind := range AllTableKinds() {
		if kind.HasColumn("update_at") {
			t.Errorf("%s allow-list must not include update_at", kind)
		}
	}
}
