package chat

// Step is one question in the scoping flow. Field names the key the answer
// is stored under; Options are suggested quick replies, but any free-text
// answer is accepted.
type Step struct {
	Field   string
	Prompt  string
	Options []string
}

// Script is the fixed question tree: a linear, step-indexed sequence with no
// branching and no backtracking.
var Script = []Step{
	{
		Field:   "projectType",
		Prompt:  "What type of project are you working on?",
		Options: []string{"Web Application", "Mobile App", "E-commerce", "SaaS Platform", "Other"},
	},
	{
		Field:   "businessGoals",
		Prompt:  "What are your main business goals for this project?",
		Options: []string{"Increase Revenue", "Improve Efficiency", "Better Customer Experience", "Market Expansion"},
	},
	{
		Field:   "timeline",
		Prompt:  "What's your ideal timeline for this project?",
		Options: []string{"ASAP (Rush job)", "1-3 months", "3-6 months", "6+ months"},
	},
	{
		Field:   "budget",
		Prompt:  "What's your approximate budget range?",
		Options: []string{"Under $25k", "$25k-$50k", "$50k-$100k", "$100k+"},
	},
	{
		Field:   "techPreferences",
		Prompt:  "Do you have any specific technology preferences?",
		Options: []string{"React/Next.js", "WordPress", "Custom Solution", "No Preference"},
	},
	{
		Field:   "features",
		Prompt:  "What are the key features you need?",
		Options: []string{"User Authentication", "Payment Processing", "Admin Dashboard", "API Integration", "All of the above"},
	},
}

const donePrompt = "Your project scope document is ready. You can download the PDF summary or book a consultation."

// fieldTitles maps answer keys to their scope-document headings, in display
// order.
var fieldTitles = []struct {
	Field string
	Title string
}{
	{"projectType", "Project Type"},
	{"businessGoals", "Business Goals"},
	{"timeline", "Timeline"},
	{"budget", "Budget Range"},
	{"techPreferences", "Technology Preferences"},
	{"features", "Key Features"},
}
