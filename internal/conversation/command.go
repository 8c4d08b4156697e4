package conversation

import "strings"

// Command is the closed set of inputs the dialogue reacts to. Every inbound
// text is classified once, before any handler runs.
type Command int

const (
	CmdFreeText Command = iota
	CmdStart
	CmdRegister
	CmdLogin
	CmdCancel
	CmdConfirm
	CmdEdit
	CmdRetry
	CmdForgotPassword
	CmdTrackOrders
	CmdLogout
	CmdEmailHelper
)

var commandNames = map[Command]string{
	CmdFreeText:       "free_text",
	CmdStart:          "start",
	CmdRegister:       "register",
	CmdLogin:          "login",
	CmdCancel:         "cancel",
	CmdConfirm:        "confirm",
	CmdEdit:           "edit",
	CmdRetry:          "retry",
	CmdForgotPassword: "forgot_password",
	CmdTrackOrders:    "track_orders",
	CmdLogout:         "logout",
	CmdEmailHelper:    "email_helper",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

var buttonCommands = map[string]Command{
	BtnRegister:       CmdRegister,
	BtnLogin:          CmdLogin,
	BtnCancel:         CmdCancel,
	BtnConfirm:        CmdConfirm,
	BtnEdit:           CmdEdit,
	BtnRetry:          CmdRetry,
	BtnForgotPassword: CmdForgotPassword,
	BtnTrackOrders:    CmdTrackOrders,
	BtnLogout:         CmdLogout,
	BtnGmail:          CmdEmailHelper,
	BtnYahoo:          CmdEmailHelper,
	BtnHotmail:        CmdEmailHelper,
}

// Classify maps raw inbound text to a Command. Button labels must match
// exactly (after trimming); anything else is free text.
func Classify(text string) Command {
	t := strings.TrimSpace(text)
	if t == "/start" || strings.HasPrefix(t, "/start ") {
		return CmdStart
	}
	if t == "/cancel" {
		return CmdCancel
	}
	if c, ok := buttonCommands[t]; ok {
		return c
	}
	return CmdFreeText
}
