package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

type Notifier interface {
	NotifySession(session models.VaccineSession) error
}

// DiscordNotifier posts session updates to a staff channel. It expects
// the session's Person, Vaccine and Location to be populated.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
	log       *zap.SugaredLogger
}

func NewDiscordNotifier(session *discordgo.Session, channelID string, log *zap.SugaredLogger) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
		log:       log,
	}
}

func (n *DiscordNotifier) NotifySession(s models.VaccineSession) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	verb := "scheduled"
	switch s.Status {
	case models.StatusCompleted:
		verb = "completed"
	case models.StatusCancelled:
		verb = "cancelled"
	case models.StatusNoShow:
		verb = "marked as no-show"
	}

	message := fmt.Sprintf("💉 **Session %s**\n**Person:** %s\n**Vaccine:** %s (dose %d of %d)\n**Location:** %s\n**When:** %s %s",
		verb,
		s.Person.FullName,
		s.Vaccine.VaccineName,
		s.DoseNumber,
		s.Vaccine.DosesRequired,
		s.Location.LocationName,
		s.VaccinationDate.Format("2006-01-02"),
		s.VaccinationTime,
	)

	if _, err := n.session.ChannelMessageSend(n.channelID, message); err != nil {
		n.log.Warnf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
