package conversation

import (
	"testing"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"/start", CmdStart},
		{"/start ref123", CmdStart},
		{"  /start  ", CmdStart},
		{"/cancel", CmdCancel},
		{BtnCancel, CmdCancel},
		{" " + BtnRegister + " ", CmdRegister},
		{BtnLogin, CmdLogin},
		{BtnConfirm, CmdConfirm},
		{BtnEdit, CmdEdit},
		{BtnRetry, CmdRetry},
		{BtnForgotPassword, CmdForgotPassword},
		{BtnTrackOrders, CmdTrackOrders},
		{BtnLogout, CmdLogout},
		{BtnYahoo, CmdEmailHelper},
		{"/startx", CmdFreeText},
		{"تسجيل", CmdFreeText},
		{"", CmdFreeText},
	}
	for _, tc := range cases {
		if got := Classify(tc.in); got != tc.want {
			t.Errorf("Classify(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseChoices(t *testing.T) {
	if got := ParseRevenue(" أكثر من 500 ألف "); got != entity.RevenueMoreThan500k {
		t.Errorf("revenue = %s", got)
	}
	if got := ParseRevenue("unknown"); got != entity.RevenueLessThan50k {
		t.Errorf("fallback revenue = %s", got)
	}
	if got := ParseBusinessType("جملة"); got != entity.BusinessWholesale {
		t.Errorf("type = %s", got)
	}
	if got := ParseBusinessType("قطاعي"); got != entity.BusinessRetail {
		t.Errorf("type = %s", got)
	}
	for _, row := range kbRevenue[:len(kbRevenue)-1] {
		if ParseRevenue(row[0]) == "" {
			t.Errorf("button %q not parseable", row[0])
		}
	}
}
