package analyzer

// Keywords that indicate high cognitive load
var DefaultHighKeywords = []string{
	"present",
	"presentation",
	"negotiate",
	"conflict",
	"resolve",
	"strategy",
	"plan",
	"design",
	"architect",
	"lead",
	"facilitate",
	"interview",
	"hire",
	"fire",
	"difficult",
	"1:1",
	"one-on-one",
	"feedback",
	"performance",
	"escalat",
	"crisis",
	"urgent",
	"critical",
	"deadline",
	"decision",
	"stakeholder",
	"executive",
	"budget",
	"forecast",
	"proposal",
	"pitch",
}

// Keywords that indicate medium cognitive load. "plan" is also in
// the high set.
var DefaultMediumKeywords = []string{
	"review",
	"write",
	"draft",
	"prepare",
	"update",
	"create",
	"analyze",
	"report",
	"document",
	"meeting",
	"agenda",
	"plan",
	"schedule",
	"coordinate",
	"follow up",
	"check",
	"assess",
	"evaluate",
	"summarize",
	"compile",
}

// Keywords that indicate routine work
var DefaultLowKeywords = []string{
	"email",
	"inbox",
	"respond",
	"reply",
	"slack",
	"messages",
	"organize",
	"file",
	"archive",
	"approve",
	"timesheet",
	"expense",
	"book",
	"calendar",
	"remind",
	"notify",
	"send",
	"forward",
	"copy",
	"move",
	"delete",
	"clean",
}

var DefaultUrgentKeywords = []string{"asap", "urgent", "today", "now", "immediately", "critical", "deadline", "eod", "eob"}

var DefaultImportantKeywords = []string{"important", "key", "major", "significant", "priority", "essential", "must"}
