package actions

// Action names exposed to agent layers.
const (
	NameAddTask      = "add_task"
	NameListTasks    = "list_tasks"
	NameCompleteTask = "complete_task"
)

// Parameter describes one argument of an action.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Definition describes a callable action: the name an agent uses, the
// description it reads, and the arguments it may pass.
type Definition struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
}

var catalogue = []Definition{
	{
		Name:        NameAddTask,
		Description: "Add a task. Include optional due date string like 2025-09-20.",
		Parameters: []Parameter{
			{Name: "text", Type: "string", Description: "What needs to be done", Required: true},
			{Name: "due", Type: "string", Description: "Optional free-form due date"},
		},
	},
	{
		Name:        NameListTasks,
		Description: "List up to 10 pending tasks.",
		Parameters:  []Parameter{},
	},
	{
		Name:        NameCompleteTask,
		Description: "Complete a task by id or matching text. Must confirm with user first.",
		Parameters: []Parameter{
			{Name: "query", Type: "string", Description: "Task id or part of the task text", Required: true},
		},
	},
}

// Catalogue returns the definitions of every action, in a stable order.
func Catalogue() []Definition {
	out := make([]Definition, len(catalogue))
	for i, d := range catalogue {
		out[i] = d
		out[i].Parameters = append([]Parameter{}, d.Parameters...)
	}
	return out
}

// Lookup returns the definition for name.
func Lookup(name string) (Definition, bool) {
	for _, d := range Catalogue() {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
