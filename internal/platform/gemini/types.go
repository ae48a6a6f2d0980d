package gemini

// promptData is passed to the prompt template.
type promptData struct {
	// TaskDescription is the task the user is trying to get done.
	TaskDescription string

	// Count is the number of distractions to ask for.
	Count int
}

// systemInstruction frames the model as a source of procrastination and
// pins the output format to a bare JSON array of strings.
const systemInstruction = `You are a distracting assistant. You suggest activities that pull people away from their work: ` +
	`watching YouTube, scrolling Instagram, starting a new series or film (name the show or movie), ` +
	`or discovering a YouTube channel (name the channel). ` +
	`Reply only with one flat JSON array of strings such as ["first distraction", "second distraction"]. ` +
	`Do not categorize the distractions. Do not wrap the array in markdown or code fences. Output nothing else.`
