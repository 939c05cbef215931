package models

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"formrunner/src/settings"
)

// Form is an admin-defined template of fields plus behavior settings. Every
// overridable setting is a pointer: nil means "inherit from the global
// settings store", a non-nil value is authoritative even when empty or false.
type Form struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code   string             `bson:"code" json:"code"`
	Title  string             `bson:"title" json:"title"`
	Fields []Field            `bson:"fields,omitempty" json:"fields,omitempty"`

	// Styling
	FormClass    *string `bson:"formClass,omitempty" json:"formClass,omitempty"`
	FieldClass   *string `bson:"fieldClass,omitempty" json:"fieldClass,omitempty"`
	RowClass     *string `bson:"rowClass,omitempty" json:"rowClass,omitempty"`
	GroupClass   *string `bson:"groupClass,omitempty" json:"groupClass,omitempty"`
	LabelClass   *string `bson:"labelClass,omitempty" json:"labelClass,omitempty"`
	SubmitClass  *string `bson:"submitClass,omitempty" json:"submitClass,omitempty"`
	SubmitText   *string `bson:"submitText,omitempty" json:"submitText,omitempty"`
	EnableCancel *bool   `bson:"enableCancel,omitempty" json:"enableCancel,omitempty"`
	CancelClass  *string `bson:"cancelClass,omitempty" json:"cancelClass,omitempty"`
	CancelText   *string `bson:"cancelText,omitempty" json:"cancelText,omitempty"`

	// Privacy
	SavesData *bool `bson:"savesData,omitempty" json:"savesData,omitempty"`

	// Anti-spam
	EnableRecaptcha     *bool   `bson:"enableRecaptcha,omitempty" json:"enableRecaptcha,omitempty"`
	EnableIPRestriction *bool   `bson:"enableIpRestriction,omitempty" json:"enableIpRestriction,omitempty"`
	MaxRequestsPerDay   *int    `bson:"maxRequestsPerDay,omitempty" json:"maxRequestsPerDay,omitempty"`
	ThrottleMessage     *string `bson:"throttleMessage,omitempty" json:"throttleMessage,omitempty"`

	// Emailing
	SendNotifications      *bool   `bson:"sendNotifications,omitempty" json:"sendNotifications,omitempty"`
	NotificationTemplate   *string `bson:"notificationTemplate,omitempty" json:"notificationTemplate,omitempty"`
	NotificationRecipients *string `bson:"notificationRecipients,omitempty" json:"notificationRecipients,omitempty"`
	AutoReply              *bool   `bson:"autoReply,omitempty" json:"autoReply,omitempty"`
	AutoReplyEmailField    *string `bson:"autoReplyEmailField,omitempty" json:"autoReplyEmailField,omitempty"`
	AutoReplyNameField     *string `bson:"autoReplyNameField,omitempty" json:"autoReplyNameField,omitempty"`
	AutoReplyTemplate      *string `bson:"autoReplyTemplate,omitempty" json:"autoReplyTemplate,omitempty"`

	// Reply-to for notifications; not part of the override set.
	NotifReplyTo           bool    `bson:"notifReplyTo,omitempty" json:"notifReplyTo,omitempty"`
	NotifReplyToEmailField *string `bson:"notifReplyToEmailField,omitempty" json:"notifReplyToEmailField,omitempty"`
	NotifReplyToNameField  *string `bson:"notifReplyToNameField,omitempty" json:"notifReplyToNameField,omitempty"`

	// Success behavior
	OnSuccess         *string `bson:"onSuccess,omitempty" json:"onSuccess,omitempty"`
	OnSuccessMessage  *string `bson:"onSuccessMessage,omitempty" json:"onSuccessMessage,omitempty"`
	OnSuccessRedirect *string `bson:"onSuccessRedirect,omitempty" json:"onSuccessRedirect,omitempty"`

	// Caching
	EnableCaching *bool `bson:"enableCaching,omitempty" json:"enableCaching,omitempty"`
	CacheLifetime *int  `bson:"cacheLifetime,omitempty" json:"cacheLifetime,omitempty"`

	store settings.Store `bson:"-" json:"-"`
}

// BindSettings attaches the global settings store used as the second tier of
// setting resolution. The repository binds it on load.
func (f *Form) BindSettings(s settings.Store) *Form {
	f.store = s
	return f
}

func (f *Form) stringSetting(override *string, key, fallback string) string {
	if override != nil {
		return *override
	}
	return settings.String(f.store, key, fallback)
}

func (f *Form) boolSetting(override *bool, key string, fallback bool) bool {
	if override != nil {
		return *override
	}
	return settings.Bool(f.store, key, fallback)
}

func (f *Form) intSetting(override *int, key string, fallback int) int {
	if override != nil {
		return *override
	}
	return settings.Int(f.store, key, fallback)
}

// SortFields orders fields by sortOrder ascending, keeping insertion order for
// equal values. Validation and rendering both follow this order.
func (f *Form) SortFields() {
	sort.SliceStable(f.Fields, func(i, j int) bool {
		return f.Fields[i].SortOrder < f.Fields[j].SortOrder
	})
}

func (f *Form) FieldByCode(code string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Code == code {
			return &f.Fields[i]
		}
	}
	return nil
}

func (f *Form) HasFileField() bool {
	for i := range f.Fields {
		if f.Fields[i].IsFile() {
			return true
		}
	}
	return false
}

// fieldRef resolves a weak field-code reference into this form's field list.
func (f *Form) fieldRef(code *string) *Field {
	if code == nil || *code == "" {
		return nil
	}
	return f.FieldByCode(*code)
}

// ====== ANTI-SPAM

func (f *Form) RecaptchaEnabled() bool {
	return f.boolSetting(f.EnableRecaptcha, "enable_recaptcha", false)
}

func (f *Form) HasIPRestriction() bool {
	return f.boolSetting(f.EnableIPRestriction, "enable_ip_restriction", false)
}

// MaxRequests returns the throttle ceiling per origin per rolling day, never
// below 1.
func (f *Form) MaxRequests() int {
	n := f.intSetting(f.MaxRequestsPerDay, "max_requests_per_day", 5)
	if n < 1 {
		n = 1
	}
	return n
}

func (f *Form) ThrottleMessageText() string {
	return f.stringSetting(f.ThrottleMessage, "throttle_message", "Failed to send due to too many requests.")
}

// ====== PRIVACY / EMAILING

func (f *Form) DoesSaveData() bool {
	return f.boolSetting(f.SavesData, "saves_data", true)
}

func (f *Form) SendsNotifications() bool {
	return f.boolSetting(f.SendNotifications, "send_notifications", true)
}

func (f *Form) NotificationTemplateName() string {
	return f.stringSetting(f.NotificationTemplate, "notification_template", "mail/notification")
}

func (f *Form) NotificationRecipientList() string {
	return f.stringSetting(f.NotificationRecipients, "notification_recipients", "")
}

func (f *Form) RepliesAutomatically() bool {
	return f.boolSetting(f.AutoReply, "auto_reply", false)
}

func (f *Form) AutoReplyEmail() *Field {
	return f.fieldRef(f.AutoReplyEmailField)
}

func (f *Form) AutoReplyName() *Field {
	return f.fieldRef(f.AutoReplyNameField)
}

func (f *Form) AutoReplyTemplateName() string {
	return f.stringSetting(f.AutoReplyTemplate, "auto_reply_template", "mail/autoreply")
}

func (f *Form) SendsReplyTo() bool {
	return f.NotifReplyTo
}

func (f *Form) NotifReplyToEmail() *Field {
	return f.fieldRef(f.NotifReplyToEmailField)
}

func (f *Form) NotifReplyToName() *Field {
	return f.fieldRef(f.NotifReplyToNameField)
}

// ====== STYLING

func (f *Form) FormClassValue() string {
	return f.stringSetting(f.FormClass, "form_class", "form")
}

// FieldClassFor resolves field -> form -> setting -> default. A nil field
// falls through to the form tier.
func (f *Form) FieldClassFor(field *Field) string {
	if field != nil && field.FieldClass != nil {
		return *field.FieldClass
	}
	return f.stringSetting(f.FieldClass, "field_class", "form-control")
}

func (f *Form) RowClassFor(field *Field) string {
	if field != nil && field.RowClass != nil {
		return *field.RowClass
	}
	return f.stringSetting(f.RowClass, "row_class", "row")
}

func (f *Form) GroupClassFor(field *Field) string {
	if field != nil && field.GroupClass != nil {
		return *field.GroupClass
	}
	return f.stringSetting(f.GroupClass, "group_class", "form-group col-md-12")
}

func (f *Form) LabelClassFor(field *Field) string {
	if field != nil && field.LabelClass != nil {
		return *field.LabelClass
	}
	return f.stringSetting(f.LabelClass, "label_class", "form-label")
}

func (f *Form) SubmitClassValue() string {
	return f.stringSetting(f.SubmitClass, "submit_class", "btn btn-primary")
}

func (f *Form) SubmitTextValue() string {
	return f.stringSetting(f.SubmitText, "submit_text", "Submit")
}

func (f *Form) CancelEnabled() bool {
	return f.boolSetting(f.EnableCancel, "enable_cancel", false)
}

func (f *Form) CancelClassValue() string {
	return f.stringSetting(f.CancelClass, "cancel_class", "btn btn-danger")
}

func (f *Form) CancelTextValue() string {
	return f.stringSetting(f.CancelText, "cancel_text", "Cancel")
}

// ====== SUCCESS / CACHING

func (f *Form) OnSuccessAction() string {
	return f.stringSetting(f.OnSuccess, "on_success", "hide")
}

func (f *Form) OnSuccessMessageText() string {
	return f.stringSetting(f.OnSuccessMessage, "on_success_message", "Successfully sent")
}

func (f *Form) OnSuccessRedirectURL() string {
	return f.stringSetting(f.OnSuccessRedirect, "on_success_redirect", "/")
}

func (f *Form) CachingEnabled() bool {
	return f.boolSetting(f.EnableCaching, "enable_caching", false)
}

// CacheLifetimeMinutes is the form snapshot cache TTL.
func (f *Form) CacheLifetimeMinutes() int {
	return f.intSetting(f.CacheLifetime, "cache_lifetime", 60)
}

// Snapshot is the form view embedded in email template vars and returned by
// the schema endpoint: identity plus all effective (resolved) settings.
func (f *Form) Snapshot() map[string]interface{} {
	return map[string]interface{}{
		"code":              f.Code,
		"title":             f.Title,
		"formClass":         f.FormClassValue(),
		"fieldClass":        f.FieldClassFor(nil),
		"rowClass":          f.RowClassFor(nil),
		"groupClass":        f.GroupClassFor(nil),
		"labelClass":        f.LabelClassFor(nil),
		"submitClass":       f.SubmitClassValue(),
		"submitText":        f.SubmitTextValue(),
		"enableCancel":      f.CancelEnabled(),
		"cancelClass":       f.CancelClassValue(),
		"cancelText":        f.CancelTextValue(),
		"onSuccess":         f.OnSuccessAction(),
		"onSuccessMessage":  f.OnSuccessMessageText(),
		"onSuccessRedirect": f.OnSuccessRedirectURL(),
	}
}
