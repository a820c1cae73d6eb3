// internal/tui/app.go
//
// The interactive browser: three panes over the same engine the CLI uses.
// Projects on the left, the selected project's task tree in the middle,
// the selected task's workfiles on the right. All filesystem work happens
// synchronously inside Update; every operation is a quick local scan or a
// single copy.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andfors/slate/internal/config"
	"github.com/andfors/slate/internal/logbook"
	"github.com/andfors/slate/internal/project"
	"github.com/andfors/slate/internal/shellopen"
	"github.com/andfors/slate/internal/task"
	"github.com/andfors/slate/internal/workfile"
)

type pane int

const (
	paneProjects pane = iota
	paneTasks
	paneFiles
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogNewProject
	dialogNewTask
	dialogNewFolder
	dialogNewFile
)

// App is the browser model. It holds all state; there is no background
// work besides what bubbletea itself schedules.
type App struct {
	cfg     *config.Config
	logbook *logbook.Logbook

	projects    []project.Project
	projectList list.Model

	// current is the opened project; nil until a project is opened.
	current *project.Project
	tree    *task.Node
	// taskRows is index-aligned with taskList's items.
	taskRows []*task.Node
	taskList list.Model

	currentTask *task.Node
	files       []workfile.File
	fileList    list.Model

	dccs     []workfile.Dcc
	dccIndex int

	focus     pane
	dialog    dialogKind
	input     textinput.Model
	statusMsg string

	width  int
	height int
}

type projectItem struct{ p project.Project }

func (i projectItem) Title() string       { return i.p.Name }
func (i projectItem) Description() string { return i.p.NameSanitized }
func (i projectItem) FilterValue() string { return i.p.Name }

type taskItem struct {
	node  *task.Node
	depth int
}

func (i taskItem) Title() string {
	name := i.node.Name
	if !i.node.IsTask {
		name += "/"
	}
	return strings.Repeat("  ", i.depth) + name
}

func (i taskItem) Description() string {
	if i.node.IsTask {
		return strings.Repeat("  ", i.depth) + "task"
	}
	return strings.Repeat("  ", i.depth) + "group"
}

func (i taskItem) FilterValue() string { return i.node.Name }

type fileItem struct{ f workfile.File }

func (i fileItem) Title() string       { return i.f.Filename() }
func (i fileItem) Description() string { return i.f.Path }
func (i fileItem) FilterValue() string { return i.f.Name }

// NewApp builds the browser over cfg. The first scans run immediately so
// the initial frame already shows the projects root.
func NewApp(cfg *config.Config, lb *logbook.Logbook) *App {
	app := &App{
		cfg:         cfg,
		logbook:     lb,
		projectList: newPane("Projects"),
		taskList:    newPane("Tasks"),
		fileList:    newPane("Files"),
		input:       textinput.New(),
	}
	app.input.CharLimit = 128
	app.refreshProjects()
	app.scanDccs()
	lb.Infof("session opened on %s", cfg.ProjectsDir)
	return app
}

func newPane(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	return l
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles one message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		colWidth := max(20, (msg.Width-6)/3)
		colHeight := max(5, msg.Height-16)
		a.projectList.SetSize(colWidth-4, colHeight)
		a.taskList.SetSize(colWidth-4, colHeight)
		a.fileList.SetSize(colWidth-4, colHeight)
		return a, nil

	case tea.KeyMsg:
		if a.dialog != dialogNone {
			return a.updateDialog(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			a.logbook.Infof("session closed")
			return a, tea.Quit
		case "tab", "right":
			a.focus = (a.focus + 1) % 3
			return a, nil
		case "shift+tab", "left":
			a.focus = (a.focus + 2) % 3
			return a, nil
		case "enter":
			a.activateSelection()
			return a, nil
		case "r":
			a.refreshAll()
			return a, nil
		case "p":
			return a.openDialog(dialogNewProject)
		case "t":
			return a.openDialog(dialogNewTask)
		case "f":
			return a.openDialog(dialogNewFolder)
		case "n":
			return a.openDialog(dialogNewFile)
		case "u":
			a.versionUp()
			return a, nil
		case "o":
			a.revealSelection()
			return a, nil
		case "d":
			a.openRole("dailies")
			return a, nil
		case "D":
			a.openRole("deliveries")
			return a, nil
		}
	}

	var cmd tea.Cmd
	switch a.focus {
	case paneProjects:
		a.projectList, cmd = a.projectList.Update(msg)
	case paneTasks:
		a.taskList, cmd = a.taskList.Update(msg)
	case paneFiles:
		a.fileList, cmd = a.fileList.Update(msg)
	}
	return a, cmd
}

// activateSelection is enter on the focused pane.
func (a *App) activateSelection() {
	switch a.focus {
	case paneProjects:
		if p, ok := a.selectedProject(); ok {
			a.openProject(p)
		}
	case paneTasks:
		if node, ok := a.selectedNode(); ok {
			a.selectTask(node)
		}
	case paneFiles:
		if f, ok := a.selectedFile(); ok {
			if err := shellopen.Open(f.Path); err != nil {
				a.fail("open failed: %v", err)
				return
			}
			a.logbook.Infof("opened %s", f.Filename())
			a.statusMsg = "opened " + f.Filename()
		}
	}
}

func (a *App) selectedProject() (project.Project, bool) {
	item, ok := a.projectList.SelectedItem().(projectItem)
	if !ok {
		return project.Project{}, false
	}
	return item.p, true
}

func (a *App) selectedNode() (*task.Node, bool) {
	idx := a.taskList.Index()
	if idx < 0 || idx >= len(a.taskRows) {
		return nil, false
	}
	return a.taskRows[idx], true
}

func (a *App) selectedFile() (workfile.File, bool) {
	idx := a.fileList.Index()
	if idx < 0 || idx >= len(a.files) {
		return workfile.File{}, false
	}
	return a.files[idx], true
}

// refreshProjects rescans the projects root. A failed scan keeps the
// previous listing on screen.
func (a *App) refreshProjects() {
	projects, err := a.cfg.FindProjects()
	if err != nil {
		a.fail("project scan failed: %v", err)
		return
	}
	a.projects = projects
	items := make([]list.Item, len(projects))
	for i, p := range projects {
		items[i] = projectItem{p: p}
	}
	a.projectList.SetItems(items)
	a.statusMsg = fmt.Sprintf("%d project(s)", len(projects))
}

func (a *App) scanDccs() {
	dccs, err := workfile.FindDccs(a.cfg.TemplatesDir)
	if err != nil {
		a.fail("template scan failed: %v", err)
		return
	}
	a.dccs = dccs
	if a.dccIndex >= len(dccs) {
		a.dccIndex = 0
	}
}

// openProject builds the task tree for p. On failure only the tree and
// everything downstream of it is cleared; the project listing survives.
func (a *App) openProject(p project.Project) {
	tree, err := task.Build(p.WorkPath(a.cfg.ProjectsDir), a.cfg.Predicate())
	if err != nil {
		a.current = nil
		a.setTree(nil)
		a.fail("open %s failed: %v", p.Name, err)
		return
	}
	a.current = &p
	a.setTree(tree)
	a.focus = paneTasks
	a.logbook.Infof("opened project %s", p.Name)
	a.statusMsg = "opened " + p.Name
}

// rebuildTree refreshes the tree of the open project after a mutation.
func (a *App) rebuildTree() {
	if a.current == nil {
		return
	}
	tree, err := task.Build(a.current.WorkPath(a.cfg.ProjectsDir), a.cfg.Predicate())
	if err != nil {
		a.setTree(nil)
		a.fail("tree refresh failed: %v", err)
		return
	}
	a.setTree(tree)
}

func (a *App) setTree(tree *task.Node) {
	a.tree = tree
	a.currentTask = nil
	a.setFiles(nil)

	rows := flatten(tree)
	a.taskRows = make([]*task.Node, len(rows))
	items := make([]list.Item, len(rows))
	for i, row := range rows {
		a.taskRows[i] = row.node
		items[i] = row
	}
	a.taskList.SetItems(items)
}

// flatten lists every node below root depth-first, keeping child order.
func flatten(root *task.Node) []taskItem {
	var rows []taskItem
	var walk func(n *task.Node, depth int)
	walk = func(n *task.Node, depth int) {
		for _, child := range n.Children {
			rows = append(rows, taskItem{node: child, depth: depth})
			walk(child, depth+1)
		}
	}
	if root != nil {
		walk(root, 0)
	}
	return rows
}

// selectTask loads the workfiles of node. Selecting a group only moves
// focus; groups have no files of their own.
func (a *App) selectTask(node *task.Node) {
	if !node.IsTask {
		a.statusMsg = node.Name + " is a group"
		return
	}
	if a.current == nil {
		return
	}
	files, err := workfile.Find(node.WorkfileDir(a.current.PrimaryWorkSubDir()), a.cfg.IgnoreExtensions)
	if err != nil {
		a.currentTask = nil
		a.setFiles(nil)
		a.fail("file scan failed: %v", err)
		return
	}
	a.currentTask = node
	a.setFiles(files)
	a.focus = paneFiles
	a.statusMsg = fmt.Sprintf("%s: %d file(s)", node.Name, len(files))
}

// refreshFiles rescans the current task. A failed scan clears the task
// selection but leaves the tree alone.
func (a *App) refreshFiles() {
	if a.currentTask == nil || a.current == nil {
		return
	}
	files, err := workfile.Find(a.currentTask.WorkfileDir(a.current.PrimaryWorkSubDir()), a.cfg.IgnoreExtensions)
	if err != nil {
		a.currentTask = nil
		a.setFiles(nil)
		a.fail("file scan failed: %v", err)
		return
	}
	a.setFiles(files)
}

func (a *App) setFiles(files []workfile.File) {
	a.files = files
	items := make([]list.Item, len(files))
	for i, f := range files {
		items[i] = fileItem{f: f}
	}
	a.fileList.SetItems(items)
}

func (a *App) refreshAll() {
	a.refreshProjects()
	a.scanDccs()
	a.rebuildTree()
}

// versionUp copies the selected workfile to its next version.
func (a *App) versionUp() {
	f, ok := a.selectedFile()
	if !ok {
		a.statusMsg = "no file selected"
		return
	}
	next, err := workfile.VersionUp(f)
	if err != nil {
		a.fail("version up failed: %v", err)
		return
	}
	a.refreshFiles()
	a.logbook.Infof("versioned %s to %s", f.Filename(), next.VersionLabel())
	a.statusMsg = "created " + next.Filename()
}

func (a *App) revealSelection() {
	f, ok := a.selectedFile()
	if !ok {
		a.statusMsg = "no file selected"
		return
	}
	if err := shellopen.Reveal(f.Path); err != nil {
		a.fail("reveal failed: %v", err)
		return
	}
	a.statusMsg = "revealed " + f.Filename()
}

// openRole opens the current project's dailies or deliveries directory in
// the file browser.
func (a *App) openRole(role string) {
	if a.current == nil {
		a.statusMsg = "no project open"
		return
	}
	path := a.current.DailiesPath(a.cfg.ProjectsDir)
	if role == "deliveries" {
		path = a.current.DeliveriesPath(a.cfg.ProjectsDir)
	}
	if err := shellopen.Open(path); err != nil {
		a.fail("open %s failed: %v", role, err)
		return
	}
	a.statusMsg = "opened " + role
}

// openDialog validates the dialog's preconditions before showing it.
func (a *App) openDialog(kind dialogKind) (tea.Model, tea.Cmd) {
	switch kind {
	case dialogNewTask, dialogNewFolder:
		if a.tree == nil {
			a.statusMsg = "open a project first"
			return a, nil
		}
	case dialogNewFile:
		if a.currentTask == nil {
			a.statusMsg = "select a task first"
			return a, nil
		}
		if len(a.dccs) == 0 {
			a.statusMsg = "no application templates found"
			return a, nil
		}
	}
	a.dialog = kind
	a.input.SetValue("")
	return a, a.input.Focus()
}

func (a *App) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.dialog = dialogNone
		a.input.Blur()
		a.statusMsg = ""
		return a, nil
	case "tab":
		if a.dialog == dialogNewFile && len(a.dccs) > 0 {
			a.dccIndex = (a.dccIndex + 1) % len(a.dccs)
			return a, nil
		}
	case "enter":
		kind := a.dialog
		name := strings.TrimSpace(a.input.Value())
		a.dialog = dialogNone
		a.input.Blur()
		a.submitDialog(kind, name)
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) submitDialog(kind dialogKind, name string) {
	if name == "" && kind != dialogNewFile {
		a.statusMsg = "name required"
		return
	}
	switch kind {
	case dialogNewProject:
		p := project.New(name, a.cfg.Template)
		if err := p.Create(a.cfg.ProjectsDir); err != nil {
			a.fail("create project failed: %v", err)
			return
		}
		a.refreshProjects()
		a.logbook.Infof("created project %s", p.Name)
		a.statusMsg = "created " + p.Name

	case dialogNewTask:
		parent := a.creationParent()
		if parent == nil {
			return
		}
		if err := parent.CreateTask(name, a.cfg.Template.WorkSubDirs); err != nil {
			a.fail("create task failed: %v", err)
			return
		}
		a.rebuildTree()
		a.logbook.Infof("created task %s under %s", name, parent.Name)
		a.statusMsg = "created task " + name

	case dialogNewFolder:
		parent := a.creationParent()
		if parent == nil {
			return
		}
		if err := parent.CreateFolder(name); err != nil {
			a.fail("create folder failed: %v", err)
			return
		}
		a.rebuildTree()
		a.statusMsg = "created folder " + name

	case dialogNewFile:
		if a.currentTask == nil || a.current == nil || len(a.dccs) == 0 {
			return
		}
		dcc := a.dccs[a.dccIndex]
		if err := workfile.Create(name, a.currentTask, *a.current, dcc); err != nil {
			a.fail("create file failed: %v", err)
			return
		}
		a.refreshFiles()
		created := workfile.NewFilename(name, a.currentTask, *a.current, dcc)
		a.logbook.Infof("created workfile %s", created)
		a.statusMsg = "created " + created
	}
}

// creationParent is where new tasks and folders go: the selected group, or
// the work root when nothing is selected. Tasks never nest further work.
func (a *App) creationParent() *task.Node {
	node, ok := a.selectedNode()
	if !ok {
		return a.tree
	}
	if node.IsTask {
		a.statusMsg = node.Name + " is a task; select a group"
		return nil
	}
	return node
}

func (a *App) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logbook.Errorf("%s", msg)
	a.statusMsg = msg
}

// View renders the three panes, the log panel and the status footer.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 120
	}
	colWidth := max(20, (width-6)/3)

	header := headerStyle.Render("SLATE")
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		a.renderPane(paneProjects, a.projectList.View(), colWidth),
		a.renderPane(paneTasks, a.taskList.View(), colWidth),
		a.renderPane(paneFiles, a.fileList.View(), colWidth),
	)

	sections := []string{header, columns}
	if a.dialog != dialogNone {
		sections = append(sections, a.renderDialog())
	}
	if panel := a.renderLogPanel(); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections, footerStyle.Render(a.footer()))
	return strings.Join(sections, "\n")
}

func (a *App) renderPane(p pane, content string, width int) string {
	style := paneStyle
	if a.focus == p && a.dialog == dialogNone {
		style = focusedPaneStyle
	}
	return style.Width(width).Render(content)
}

func (a *App) renderDialog() string {
	title := ""
	switch a.dialog {
	case dialogNewProject:
		title = "New project"
	case dialogNewTask:
		title = "New task"
	case dialogNewFolder:
		title = "New folder"
	case dialogNewFile:
		dcc := a.dccs[a.dccIndex]
		title = fmt.Sprintf("New %s file (tab switches application, name optional)", dcc.Name)
	}
	return dialogStyle.Render(title + "\n" + a.input.View())
}

func (a *App) renderLogPanel() string {
	lines := a.logbook.Tail(8)
	if len(lines) == 0 {
		return ""
	}
	head := logHeadStyle.Render("LOG · " + filepath.Base(a.logbook.Path()))
	body := logBodyStyle.Render(strings.Join(lines, "\n"))
	return paneStyle.Render(head + "\n" + body)
}

func (a *App) footer() string {
	if a.statusMsg != "" {
		return a.statusMsg
	}
	return "enter open · p project · t task · f folder · n file · u version up · o reveal · d/D dailies/deliveries · r refresh · q quit"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
