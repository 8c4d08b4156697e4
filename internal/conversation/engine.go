package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/superstar-bot/internal/domain/entity"
	"github.com/oksasatya/superstar-bot/internal/domain/errs"
	"github.com/oksasatya/superstar-bot/internal/infrastructure/session"
	"github.com/oksasatya/superstar-bot/pkg/validation"
)

// DefaultMaxLoginAttempts is how many wrong passwords are tolerated before the
// reply pushes the user towards password recovery.
const DefaultMaxLoginAttempts = 3

// Engine is the onboarding state machine. Handle validates one input against
// the session's state, updates the session in place and returns the reply.
// Validation failures re-prompt in the same state; storage failures never
// advance the state.
type Engine struct {
	Dir              Directory
	Creds            Credentials
	Logger           *logrus.Logger
	WebAppURL        string
	MaxLoginAttempts int
}

func NewEngine(dir Directory, creds Credentials, logger *logrus.Logger, webAppURL string) *Engine {
	return &Engine{
		Dir:              dir,
		Creds:            creds,
		Logger:           logger,
		WebAppURL:        webAppURL,
		MaxLoginAttempts: DefaultMaxLoginAttempts,
	}
}

type stateHandler func(e *Engine, ctx context.Context, s *session.Session, cmd Command, text string) Reply

var handlers = map[entity.ConversationState]stateHandler{
	entity.StateStart:                   (*Engine).choosePath,
	entity.StateTerminal:                (*Engine).choosePath,
	entity.StateChoosingPath:            (*Engine).choosePath,
	entity.StateAwaitingFullName:        (*Engine).fullName,
	entity.StateAwaitingPhone:           (*Engine).phone,
	entity.StateAwaitingEmail:           (*Engine).email,
	entity.StateAwaitingBusinessName:    (*Engine).businessName,
	entity.StateAwaitingBusinessAddress: (*Engine).businessAddress,
	entity.StateAwaitingGovernorate:     (*Engine).governorate,
	entity.StateAwaitingRevenue:         (*Engine).revenue,
	entity.StateAwaitingBusinessType:    (*Engine).businessType,
	entity.StateAwaitingPassword:        (*Engine).password,
	entity.StateAwaitingConfirmation:    (*Engine).confirmation,
	entity.StateAwaitingLoginPhone:      (*Engine).loginPhone,
	entity.StateAwaitingLoginPassword:   (*Engine).loginPassword,
}

// Handle runs one turn of the dialogue.
func (e *Engine) Handle(ctx context.Context, s *session.Session, text string) Reply {
	cmd := Classify(text)
	if cmd == CmdStart {
		if midFlow(s.State) {
			// a running registration or login is only left through cancel
			return Reply{Silent: true}
		}
		return e.Start(ctx, s)
	}
	if cmd == CmdCancel && s.State.InProgress() {
		return e.cancel(s)
	}
	h, ok := handlers[s.State]
	if !ok {
		// unknown persisted state, start over
		s.Reset()
		s.State = entity.StateChoosingPath
		return Reply{Text: msgChoosePath, Keyboard: kbChoosePath}
	}
	return h(e, ctx, s, cmd, text)
}

// Start greets the chat. A chat already bound to an account gets the main
// menu and no conversation; otherwise the register/login choice is offered.
func (e *Engine) Start(ctx context.Context, s *session.Session) Reply {
	s.Reset()
	u, err := e.Dir.ExistsByChatIdentity(ctx, s.ChatID)
	if err != nil {
		s.State = entity.StateStart
		return e.storageFailure(s, err)
	}
	if u != nil {
		s.State = entity.StateTerminal
		return e.mainMenu(fmt.Sprintf(msgWelcomeBackFmt, u.FullName))
	}
	s.State = entity.StateChoosingPath
	return Reply{Text: msgWelcomeNew, Keyboard: kbChoosePath}
}

// midFlow reports whether st is a step of a running registration or login.
func midFlow(st entity.ConversationState) bool {
	return st.InProgress() && st != entity.StateChoosingPath
}

func (e *Engine) cancel(s *session.Session) Reply {
	s.Reset()
	s.State = entity.StateChoosingPath
	return Reply{Text: msgCancelled, Keyboard: kbChoosePath}
}

func (e *Engine) choosePath(_ context.Context, s *session.Session, cmd Command, _ string) Reply {
	switch cmd {
	case CmdRegister:
		s.Reset()
		s.State = entity.StateAwaitingFullName
		return Reply{Text: msgAskFullName, Keyboard: kbCancelOnly}
	case CmdLogin:
		s.Reset()
		s.State = entity.StateAwaitingLoginPhone
		return Reply{Text: msgAskLoginPhone, Keyboard: kbCancelOnly}
	}
	s.State = entity.StateChoosingPath
	return Reply{Text: msgChoosePath, Keyboard: kbChoosePath}
}

func (e *Engine) fullName(_ context.Context, s *session.Session, _ Command, text string) Reply {
	name := strings.TrimSpace(text)
	if !validation.IsFullName(name) {
		return invalid(msgBadFullName, kbCancelOnly)
	}
	s.Draft.FullName = name
	s.State = entity.StateAwaitingPhone
	return Reply{Text: msgAskPhone, Keyboard: kbCancelOnly}
}

func (e *Engine) phone(ctx context.Context, s *session.Session, _ Command, text string) Reply {
	phone := strings.TrimSpace(text)
	if !validation.IsIraqiMobile(phone) {
		return invalid(msgBadPhone, kbCancelOnly)
	}
	existing, err := e.Dir.ExistsByPhone(ctx, phone)
	if err != nil {
		return e.storageFailure(s, err)
	}
	if existing != nil {
		return Reply{Text: msgPhoneTaken, Keyboard: kbCancelOnly, Err: errs.ErrPhoneTaken}
	}
	s.Draft.Phone = phone
	s.State = entity.StateAwaitingEmail
	return Reply{Text: msgAskEmail, Keyboard: kbEmailHelpers}
}

func (e *Engine) email(_ context.Context, s *session.Session, cmd Command, text string) Reply {
	t := strings.TrimSpace(text)
	if cmd == CmdEmailHelper {
		return Reply{Text: fmt.Sprintf(msgEmailHelperFmt, t), Keyboard: kbEmailHelpers}
	}
	if !validation.IsEmail(t) {
		return invalid(msgBadEmail, kbEmailHelpers)
	}
	s.Draft.Email = t
	s.State = entity.StateAwaitingBusinessName
	return Reply{Text: msgAskBusinessName, Keyboard: kbCancelOnly}
}

func (e *Engine) businessName(_ context.Context, s *session.Session, _ Command, text string) Reply {
	t := strings.TrimSpace(text)
	if validation.IsBlank(t) {
		return invalid(msgEmptyField, kbCancelOnly)
	}
	s.Draft.BusinessName = t
	s.State = entity.StateAwaitingBusinessAddress
	return Reply{Text: msgAskBusinessAddress, Keyboard: kbCancelOnly}
}

func (e *Engine) businessAddress(_ context.Context, s *session.Session, _ Command, text string) Reply {
	t := strings.TrimSpace(text)
	if validation.IsBlank(t) {
		return invalid(msgEmptyField, kbCancelOnly)
	}
	s.Draft.BusinessAddress = t
	s.State = entity.StateAwaitingGovernorate
	return Reply{Text: msgAskGovernorate, Keyboard: governorates}
}

func (e *Engine) governorate(_ context.Context, s *session.Session, _ Command, text string) Reply {
	t := strings.TrimSpace(text)
	if validation.IsBlank(t) {
		return invalid(msgEmptyField, governorates)
	}
	s.Draft.Governorate = t
	s.State = entity.StateAwaitingRevenue
	return Reply{Text: msgAskRevenue, Keyboard: kbRevenue}
}

func (e *Engine) revenue(_ context.Context, s *session.Session, _ Command, text string) Reply {
	s.Draft.AnnualRevenue = ParseRevenue(text)
	s.State = entity.StateAwaitingBusinessType
	return Reply{Text: msgAskBusinessType, Keyboard: kbBusinessType}
}

func (e *Engine) businessType(_ context.Context, s *session.Session, _ Command, text string) Reply {
	s.Draft.BusinessType = ParseBusinessType(text)
	s.State = entity.StateAwaitingPassword
	return Reply{Text: msgAskPassword, Keyboard: kbCancelOnly}
}

// password never echoes its input, and the inbound message is always deleted.
func (e *Engine) password(_ context.Context, s *session.Session, _ Command, text string) Reply {
	pwd := strings.TrimSpace(text)
	switch validation.CheckPassword(pwd) {
	case validation.PasswordTooShort:
		r := invalid(msgPasswordTooShort, kbCancelOnly)
		r.DeleteInbound = true
		return r
	case validation.PasswordTooLong:
		r := invalid(msgPasswordTooLong, kbCancelOnly)
		r.DeleteInbound = true
		return r
	case validation.PasswordNeedsLetterAndDigit:
		r := invalid(msgPasswordLetterDigit, kbCancelOnly)
		r.DeleteInbound = true
		return r
	}
	s.Draft.Password = pwd
	s.State = entity.StateAwaitingConfirmation
	return Reply{Text: Summary(s.Draft), Keyboard: kbConfirm, DeleteInbound: true}
}

func (e *Engine) confirmation(ctx context.Context, s *session.Session, cmd Command, _ string) Reply {
	switch cmd {
	case CmdEdit:
		return Reply{Text: msgEditNotReady, Keyboard: kbConfirm}
	case CmdConfirm:
	default:
		return Reply{Text: msgConfirmChoice, Keyboard: kbConfirm}
	}

	if !s.Draft.Complete() {
		// lost part of the draft (e.g. store expiry mid-flow); nothing to commit
		return e.cancel(s)
	}
	hash, err := e.Creds.Hash(s.Draft.Password)
	if err != nil {
		e.log(s).WithError(err).Error("hash password failed")
		return Reply{Text: msgRegisterFailed, Keyboard: kbConfirm, Err: err}
	}
	id, err := e.Dir.Create(ctx, s.Draft, s.ChatID, hash)
	switch {
	case errs.Is(err, errs.KindDuplicate):
		return Reply{Text: msgPhoneTaken, Keyboard: kbConfirm, Err: err}
	case err != nil:
		e.log(s).WithError(err).Warn("registration commit failed")
		return Reply{Text: msgRegisterFailed, Keyboard: kbConfirm, Err: err}
	}

	e.log(s).WithField("user_id", id).Info("registration completed")
	s.Reset()
	s.State = entity.StateTerminal
	return e.mainMenu(msgRegistered)
}

func (e *Engine) loginPhone(ctx context.Context, s *session.Session, _ Command, text string) Reply {
	phone := strings.TrimSpace(text)
	u, err := e.Dir.ExistsByPhone(ctx, phone)
	if err != nil {
		return e.storageFailure(s, err)
	}
	if u == nil {
		return Reply{Text: msgLoginPhoneUnknown, Keyboard: kbCancelOnly, Err: errs.ErrUserNotFound}
	}
	s.LoginPhone = phone
	s.FailedLogins = 0
	s.State = entity.StateAwaitingLoginPassword
	return Reply{Text: msgAskLoginPassword, Keyboard: kbCancelOnly}
}

func (e *Engine) loginPassword(ctx context.Context, s *session.Session, cmd Command, text string) Reply {
	switch cmd {
	case CmdRetry:
		return Reply{Text: msgAskLoginPassword, Keyboard: kbCancelOnly}
	case CmdForgotPassword:
		return e.forgotPassword(ctx, s)
	}

	// whatever happens next, the password must not stay in the chat history
	u, err := e.Creds.Verify(ctx, s.LoginPhone, strings.TrimSpace(text))
	if err != nil {
		r := e.storageFailure(s, err)
		r.DeleteInbound = true
		return r
	}
	if u == nil {
		s.FailedLogins++
		msg := msgWrongPassword
		if e.MaxLoginAttempts > 0 && s.FailedLogins >= e.MaxLoginAttempts {
			msg = msgTooManyAttempts
		}
		e.log(s).WithField("attempt", s.FailedLogins).Info("login rejected")
		return Reply{Text: msg, Keyboard: kbWrongPass, DeleteInbound: true, Err: errs.ErrInvalidCredentials}
	}
	if !u.IsActive() {
		e.log(s).WithField("user_id", u.ID).Info("login to disabled account")
		s.Reset()
		s.State = entity.StateTerminal
		return Reply{Text: msgAccountDisabled, Keyboard: kbChoosePath, DeleteInbound: true, Err: errs.ErrAccountDisabled}
	}

	chatID := s.ChatID
	if err := e.Dir.RebindChatIdentity(ctx, s.LoginPhone, &chatID); err != nil {
		r := e.storageFailure(s, err)
		r.DeleteInbound = true
		return r
	}
	e.log(s).WithField("user_id", u.ID).Info("login succeeded")
	s.Reset()
	s.State = entity.StateTerminal
	r := e.mainMenu(fmt.Sprintf(msgLoggedInFmt, u.FullName))
	r.DeleteInbound = true
	return r
}

func (e *Engine) forgotPassword(ctx context.Context, s *session.Session) Reply {
	req, err := e.Creds.RequestReset(ctx, s.LoginPhone)
	if err != nil {
		if errs.Is(err, errs.KindNotFound) {
			return Reply{Text: msgResetNoEmail, Keyboard: kbWrongPass, Err: err}
		}
		return e.storageFailure(s, err)
	}
	if !req.Emailed {
		return Reply{Text: msgResetNoEmail, Keyboard: kbWrongPass}
	}
	return Reply{Text: msgResetEmailed, Keyboard: kbWrongPass}
}

func (e *Engine) mainMenu(text string) Reply {
	return Reply{Text: text, Keyboard: kbMainMenu, WebAppURL: e.WebAppURL}
}

// storageFailure leaves the state untouched and hides the cause from the user.
func (e *Engine) storageFailure(s *session.Session, err error) Reply {
	e.log(s).WithError(err).Error("turn failed on storage")
	return Reply{Text: msgTryAgainLater, Keyboard: kbCancelOnly, Err: err}
}

func (e *Engine) log(s *session.Session) *logrus.Entry {
	l := e.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	return l.WithFields(logrus.Fields{"chat_id": s.ChatID, "state": s.State})
}

func invalid(text string, kb [][]string) Reply {
	return Reply{Text: text, Keyboard: kb, Err: errs.Validation(text)}
}

// Summary renders the draft for confirmation. The password is never included.
func Summary(d entity.RegistrationDraft) string {
	var b strings.Builder
	b.WriteString("📋 تأكيد البيانات:\n\n")
	fmt.Fprintf(&b, "👤 الاسم: %s\n", d.FullName)
	fmt.Fprintf(&b, "📱 الهاتف: %s\n", d.Phone)
	fmt.Fprintf(&b, "📧 البريد: %s\n", d.Email)
	fmt.Fprintf(&b, "🏢 النشاط: %s\n", d.BusinessName)
	fmt.Fprintf(&b, "📍 العنوان: %s\n", d.BusinessAddress)
	fmt.Fprintf(&b, "🏛️ المحافظة: %s\n", d.Governorate)
	fmt.Fprintf(&b, "💰 الأرباح السنوية: %s\n", revenueLabel(d.AnnualRevenue))
	fmt.Fprintf(&b, "🏪 نوع النشاط: %s\n\n", businessTypeLabel(d.BusinessType))
	b.WriteString("هل البيانات صحيحة؟")
	return b.String()
}
