package model

import "testing"

func TestPaymentStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   PaymentStatus
		value string
	}{
		{"pending", PaymentStatusPending, "pending"},
		{"completed", PaymentStatusCompleted, "completed"},
		{"failed", PaymentStatusFailed, "failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestPaymentStatusIsTerminal(t *testing.T) {
	cases := []struct {
		status   PaymentStatus
		terminal bool
	}{
		{PaymentStatusPending, false},
		{PaymentStatusCompleted, true},
		{PaymentStatusFailed, true},
	}

	for _, tc := range cases {
		if tc.status.IsTerminal() != tc.terminal {
			t.Fatalf("IsTerminal(%s) = %v, expected %v", tc.status, tc.status.IsTerminal(), tc.terminal)
		}
	}
}

func TestRoleValues(t *testing.T) {
	cases := []struct {
		role  Role
		value string
	}{
		{RoleSuperadmin, "superadmin"},
		{RoleManager, "manager"},
		{RoleCustomer, "customer"},
	}

	for _, tc := range cases {
		if string(tc.role) != tc.value {
			t.Fatalf("expected %s, got %s", tc.value, tc.role)
		}
	}
}
