package conversation

// Button labels. They double as the command vocabulary recognised by Classify.
const (
	BtnRegister       = "📝 تسجيل حساب جديد"
	BtnLogin          = "🔑 لدي حساب بالفعل"
	BtnCancel         = "❌ إلغاء"
	BtnConfirm        = "✅ تأكيد التسجيل"
	BtnEdit           = "✏️ تعديل البيانات"
	BtnRetry          = "🔄 المحاولة مرة أخرى"
	BtnForgotPassword = "🔑 نسيت كلمة المرور؟"
	BtnTrackOrders    = "📦 تتبع طلبي"
	BtnLogout         = "🚪 تسجيل الخروج"
	BtnOpenWebApp     = "🌟 افتح تطبيق SuperStar"
	BtnGmail          = "@gmail.com"
	BtnYahoo          = "@yahoo.com"
	BtnHotmail        = "@hotmail.com"
)

const (
	msgWelcomeNew = "🌟 مرحباً بك في SuperStar! 🌟\n\n" +
		"نظام إدارة المخازن والبيع بالجملة المتطور\n" +
		"المتخصص في تجارة الأحذية\n\n" +
		"اختر أحد الخيارات التالية:"
	msgWelcomeBackFmt = "مرحباً بك مرة أخرى %s! 👋\n\nاختر ما تريد فعله:"
	msgChoosePath     = "اختر أحد الخيارات التالية:"

	msgAskFullName = "ممتاز! سنقوم بإنشاء حساب جديد لك.\n\nالرجاء إدخال الاسم الثلاثي:"
	msgBadFullName = "الرجاء إدخال الاسم الثلاثي كاملاً (على الأقل 6 أحرف):"

	msgAskPhone       = "ممتاز! 👍\n\nالرجاء إدخال رقم الهاتف:\n(مثال: 07901234567)"
	msgBadPhone       = "رقم الهاتف غير صحيح. الرجاء إدخال رقم عراقي صحيح:\n(مثال: 07901234567)"
	msgPhoneTaken     = "هذا الرقم مسجل بالفعل في النظام.\nيمكنك تسجيل الدخول باستخدام خيار 'لدي حساب بالفعل'"
	msgAskEmail       = "الرجاء إدخال البريد الإلكتروني:\n(يمكنك استخدام الأزرار أدناه للمساعدة)"
	msgEmailHelperFmt = "اكتب اسم المستخدم قبل %s"
	msgBadEmail       = "البريد الإلكتروني غير صحيح. الرجاء المحاولة مرة أخرى:"

	msgAskBusinessName    = "ما هو اسم نشاطك التجاري أو المنشأة؟"
	msgAskBusinessAddress = "أين يقع عنوان المنشأة؟"
	msgAskGovernorate     = "الرجاء تحديد محافظة الإقامة:"
	msgAskRevenue         = "كم تقدر أرباحك السنوية؟"
	msgAskBusinessType    = "ما هو نوع نشاطك؟"
	msgEmptyField         = "الرجاء إدخال قيمة صحيحة:"

	msgAskPassword         = "الرجاء إدخال كلمة مرور قوية لتأمين حسابك:\n(على الأقل 8 أحرف، تحتوي على أرقام وحروف)"
	msgPasswordTooShort    = "كلمة المرور يجب أن تكون 8 أحرف على الأقل:"
	msgPasswordLetterDigit = "كلمة المرور يجب أن تحتوي على أرقام وحروف:"
	msgPasswordTooLong     = "كلمة المرور طويلة جداً، استخدم 72 حرفاً لاتينياً كحد أقصى:"

	msgConfirmChoice  = "الرجاء اختيار أحد الخيارات: تأكيد التسجيل أو إلغاء."
	msgEditNotReady   = "سيتم إضافة خاصية التعديل قريباً. الرجاء إلغاء التسجيل والبدء من جديد."
	msgRegistered     = "🎉 تم إنشاء حسابك بنجاح!\n\nمرحباً بك في عائلة SuperStar 🌟\nيمكنك الآن الوصول إلى جميع خدماتنا"
	msgRegisterFailed = "❌ حدث خطأ أثناء إنشاء الحساب.\nالرجاء المحاولة مرة أخرى أو التواصل مع الدعم الفني."

	msgAskLoginPhone     = "الرجاء إدخال رقم الهاتف المسجل:"
	msgLoginPhoneUnknown = "❌ هذا الرقم غير مسجل لدينا.\nيمكنك التسجيل من جديد باختيار 'تسجيل حساب جديد'"
	msgAskLoginPassword  = "الرجاء إدخال كلمة المرور:\n(سيتم حذف رسالتك تلقائياً لحماية خصوصيتك)"
	msgWrongPassword     = "❌ كلمة المرور غير صحيحة.\nاختر أحد الخيارات:"
	msgTooManyAttempts   = "❌ كلمة المرور غير صحيحة عدة مرات.\nيمكنك طلب إعادة تعيين كلمة المرور أو الإلغاء."
	msgAccountDisabled   = "❌ حسابك معطل. الرجاء التواصل مع الدعم الفني."
	msgLoggedInFmt       = "مرحباً بك %s! 👋\n\nتم تسجيل الدخول بنجاح ✅"
	msgResetEmailed      = "📧 أرسلنا رابط إعادة تعيين كلمة المرور إلى بريدك الإلكتروني.\nالرابط صالح لمدة ساعة واحدة."
	msgResetNoEmail      = "لا يمكن إرسال رابط إعادة التعيين حالياً.\nالرجاء التواصل مع الدعم الفني."

	msgCancelled = "تم إلغاء العملية ❌\nيمكنك البدء من جديد في أي وقت"

	msgNoOrders      = "لا توجد طلبات حالياً 📭"
	msgOrdersHeader  = "📦 آخر طلباتك:\n\n"
	msgDataError     = "❌ خطأ في الوصول للبيانات"
	msgLoggedOut     = "تم تسجيل الخروج بنجاح 👋\nيمكنك تسجيل الدخول مرة أخرى في أي وقت"
	msgTryAgainLater = "⚠️ حدث خطأ مؤقت. الرجاء المحاولة مرة أخرى بعد قليل."
)

// Iraqi governorates offered as buttons.
var governorates = [][]string{
	{"بغداد", "البصرة"}, {"نينوى", "أربيل"},
	{"النجف", "كربلاء"}, {"الأنبار", "صلاح الدين"},
	{"كركوك", "ديالى"}, {"واسط", "بابل"},
	{"المثنى", "القادسية"}, {"ذي قار", "ميسان"},
	{"دهوك", "السليمانية"}, {BtnCancel},
}

var (
	kbChoosePath   = [][]string{{BtnRegister}, {BtnLogin}}
	kbMainMenu     = [][]string{{BtnTrackOrders, BtnLogout}}
	kbCancelOnly   = [][]string{{BtnCancel}}
	kbEmailHelpers = [][]string{{BtnGmail, BtnYahoo}, {BtnHotmail, BtnCancel}}
	kbRevenue      = [][]string{{"أقل من 50 ألف"}, {"50-100 ألف"}, {"100-200 ألف"}, {"200-500 ألف"}, {"أكثر من 500 ألف"}, {BtnCancel}}
	kbBusinessType = [][]string{{"جملة", "قطاعي"}, {BtnCancel}}
	kbConfirm      = [][]string{{BtnConfirm, BtnCancel}, {BtnEdit}}
	kbWrongPass    = [][]string{{BtnRetry}, {BtnForgotPassword}, {BtnCancel}}
)
