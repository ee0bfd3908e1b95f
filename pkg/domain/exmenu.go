package domain

// ControlType distinguishes leaf toggles from folders.
type ControlType string

const (
	ControlToggle  ControlType = "toggle"
	ControlSubMenu ControlType = "submenu"
)

// Icon references an image the runtime UI shows next to a control.
// Built-in icons use the "builtin:" scheme; generated thumbnails use output-relative paths.
type Icon string

const (
	IconFolder       Icon = "builtin:folder"
	IconLogo         Icon = "builtin:logo"
	IconLock         Icon = "builtin:lock"
	IconFace         Icon = "builtin:face-smile"
	IconSettings     Icon = "builtin:settings"
	IconBlinkOff     Icon = "builtin:blink-off"
	IconDance        Icon = "builtin:person-dance"
	IconContactLock  Icon = "builtin:contact-lock"
	IconOverride     Icon = "builtin:hand-waving"
	IconVoice        Icon = "builtin:face-gasp"
	IconHandPattern  Icon = "builtin:face-select"
	IconSwapLR       Icon = "builtin:hand-rl"
	IconDisableLeft  Icon = "builtin:hand-l-disable"
	IconDisableRight Icon = "builtin:hand-r-disable"
	IconController   Icon = "builtin:controller"
	IconQuest        Icon = "builtin:quest-controller"
	IconIndex        Icon = "builtin:index-controller"
)

// Control is one entry of a selector menu. Toggles bind (Parameter, Value); submenus
// may bind a parameter too, which the runtime sets while the folder is open.
type Control struct {
	Name      string      `json:"name"`
	Type      ControlType `json:"type"`
	Icon      Icon        `json:"icon,omitempty"`
	Parameter string      `json:"parameter,omitempty"`
	Value     float64     `json:"value,omitempty"`
	SubMenu   *ExMenu     `json:"sub_menu,omitempty"`
}

// ExMenu is a folder in the selector tree.
type ExMenu struct {
	Name     string     `json:"name"`
	Controls []*Control `json:"controls"`
}

// NewExMenu creates an empty folder.
func NewExMenu(name string) *ExMenu {
	return &ExMenu{Name: name, Controls: []*Control{}}
}

// AddToggle appends a leaf control bound to parameter=value.
func (m *ExMenu) AddToggle(name string, icon Icon, parameter string, value float64) *Control {
	c := &Control{Name: name, Type: ControlToggle, Icon: icon, Parameter: parameter, Value: value}
	m.Controls = append(m.Controls, c)
	return c
}

// AddSubMenu appends a folder control and returns the new folder.
func (m *ExMenu) AddSubMenu(name string, icon Icon) (*ExMenu, *Control) {
	sub := NewExMenu(name)
	c := &Control{Name: name, Type: ControlSubMenu, Icon: icon, SubMenu: sub}
	m.Controls = append(m.Controls, c)
	return sub, c
}

// Walk visits every control depth-first.
func (m *ExMenu) Walk(fn func(depth int, c *Control)) {
	m.walk(0, fn)
}

func (m *ExMenu) walk(depth int, fn func(int, *Control)) {
	for _, c := range m.Controls {
		fn(depth, c)
		if c.SubMenu != nil {
			c.SubMenu.walk(depth+1, fn)
		}
	}
}
