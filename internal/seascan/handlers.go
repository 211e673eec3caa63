package seascan

import (
	"fmt"

	tghelpers "github.com/aleRizzolo/SeaScan/core/telegram/helpers"
	"github.com/aleRizzolo/SeaScan/core/telegram/keyboard"
	"github.com/aleRizzolo/SeaScan/core/telegram/state"

	tele "gopkg.in/telebot.v3"
)

// Continuation states. At most one is pending per chat; registering a new
// one replaces it.
const (
	AwaitEmailRecipient state.State = "await_email_recipient"
	AwaitBeachOn        state.State = "await_beach_on"
	AwaitBeachOff       state.State = "await_beach_off"
)

const (
	msgNoBeach       = "No beach found in the table."
	msgSelectBeach   = "Select a beach:"
	msgInsertEmail   = "Please insert your email"
	msgEmailSent     = "Email sent successfully!"
	msgStatusUpdated = "Active status updated successfully!"
	msgBeachDone     = "Done"
)

// Handlers binds the chat surface to the domain service.
type Handlers struct {
	svc   *Service
	flows state.Manager
}

// NewHandlers wires the chat handlers.
func NewHandlers(svc *Service, flows state.Manager) (*Handlers, error) {
	if svc == nil {
		return nil, fmt.Errorf("seascan: service must not be nil")
	}
	if flows == nil {
		return nil, fmt.Errorf("seascan: state manager must not be nil")
	}
	return &Handlers{svc: svc, flows: flows}, nil
}

// Start greets the sender and points them at the command menu.
func (h *Handlers) Start(c tele.Context) error {
	name := ""
	if u := c.Sender(); u != nil {
		name = u.Username
	}
	return tghelpers.SendMD(c, fmt.Sprintf("Welcome %s, press /help to get the list of commands", name))
}

// Help shows the inline command menu, two buttons per row.
func (h *Handlers) Help(c tele.Context) error {
	menu := keyboard.InlineButtonsNPerRow([]keyboard.InlineBtn{
		{Text: "Generate Data", Unique: "generateData"},
		{Text: "Average PH", Unique: "averagePH"},
		{Text: "Average Hydrocarbons", Unique: "averageHydrocarbons"},
		{Text: "Send Email", Unique: "sendEmail"},
		{Text: "Switch Sensor On", Unique: "switchSensorOn"},
		{Text: "Switch Sensor Off", Unique: "switchSensorOff"},
		{Text: "Activate Sensors", Unique: "ONsensors"},
		{Text: "Deactivate Sensors", Unique: "OFFsensors"},
	}, 2)
	return tghelpers.SendKeyboard(c, "Choose a command:", menu)
}

// GenerateData triggers the measurement generator and the averages refresh,
// reporting progress to the chat in order.
func (h *Handlers) GenerateData(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	return h.svc.GenerateData(ctx, chatID(c), func(text string) error {
		return tghelpers.SendText(c, text)
	})
}

// AveragePH sends the ph-only measurement summary.
func (h *Handlers) AveragePH(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	summary, err := h.svc.PHSummary(ctx)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, summary)
}

// AverageHydrocarbons sends the hydrocarbons-only measurement summary.
func (h *Handlers) AverageHydrocarbons(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	summary, err := h.svc.HydrocarbonSummary(ctx)
	if err != nil {
		return err
	}
	return tghelpers.SendText(c, summary)
}

// SendEmail asks for a recipient address and waits for the reply.
func (h *Handlers) SendEmail(c tele.Context) error {
	if err := tghelpers.SendText(c, msgInsertEmail); err != nil {
		return err
	}
	h.flows.Set(chatID(c), AwaitEmailRecipient, nil)
	return nil
}

// EmailRecipientReceived mails the full report to the address just typed.
func (h *Handlers) EmailRecipientReceived(c tele.Context, _ map[string]string) error {
	ctx := tghelpers.BuildContext(c)
	botName := ""
	if b := c.Bot(); b != nil && b.Me != nil {
		botName = b.Me.Username
	}
	if err := h.svc.EmailReport(ctx, c.Text(), botName); err != nil {
		return err
	}
	return tghelpers.SendText(c, msgEmailSent)
}

// SensorsOn switches every sensor in the network on.
func (h *Handlers) SensorsOn(c tele.Context) error {
	return h.toggleAll(c, true)
}

// SensorsOff switches every sensor in the network off.
func (h *Handlers) SensorsOff(c tele.Context) error {
	return h.toggleAll(c, false)
}

func (h *Handlers) toggleAll(c tele.Context, on bool) error {
	ctx := tghelpers.BuildContext(c)
	if err := h.svc.ToggleAll(ctx, on, chatID(c)); err != nil {
		return err
	}
	return tghelpers.SendText(c, msgStatusUpdated)
}

// SwitchSensorOn presents the beach choices for switching one sensor on.
func (h *Handlers) SwitchSensorOn(c tele.Context) error {
	return h.promptBeach(c, AwaitBeachOn)
}

// SwitchSensorOff presents the beach choices for switching one sensor off.
func (h *Handlers) SwitchSensorOff(c tele.Context) error {
	return h.promptBeach(c, AwaitBeachOff)
}

func (h *Handlers) promptBeach(c tele.Context, next state.State) error {
	ctx := tghelpers.BuildContext(c)
	beaches, err := h.svc.BeachChoices(ctx)
	if err != nil {
		return err
	}
	if len(beaches) == 0 {
		return tghelpers.SendText(c, msgNoBeach)
	}
	if err := tghelpers.SendKeyboard(c, msgSelectBeach, keyboard.ReplyButtonsNPerRow(beaches, 2)); err != nil {
		return err
	}
	h.flows.Set(chatID(c), next, nil)
	return nil
}

// BeachOnReceived switches on the sensor at the beach just named. The reply
// text is forwarded as given; the action decides whether the beach exists.
func (h *Handlers) BeachOnReceived(c tele.Context, _ map[string]string) error {
	return h.beachToggled(c, true)
}

// BeachOffReceived switches off the sensor at the beach just named.
func (h *Handlers) BeachOffReceived(c tele.Context, _ map[string]string) error {
	return h.beachToggled(c, false)
}

func (h *Handlers) beachToggled(c tele.Context, on bool) error {
	ctx := tghelpers.BuildContext(c)
	if err := h.svc.ToggleBeach(ctx, on, c.Text()); err != nil {
		return err
	}
	return tghelpers.SendKeyboard(c, msgBeachDone, keyboard.RemoveKeyboard())
}

// Monitor triggers the active-monitoring sweep on demand.
func (h *Handlers) Monitor(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := h.svc.MonitoringSweep(ctx); err != nil {
		return err
	}
	return tghelpers.SendText(c, msgBeachDone)
}

func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if user := c.Sender(); user != nil {
		return user.ID
	}
	return 0
}
