package service

import (
	"bytes"
	"database/sql"
	"errors"
	"html/template"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// rewardSubject is the subject line of the reward announcement.
const rewardSubject = "Congrats! You have won some rewards!"

// rewardTemplate renders the reward announcement sent to a trader with
// pending cards.
var rewardTemplate = template.Must(template.New("reward").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Woodcrrests | Email</title>
</head>
<body style="font-family: Arial, sans-serif; text-align: center; margin: 0; padding: 0;">
  <table role="presentation" cellspacing="0" cellpadding="0" border="0" align="center" max-width="680px" style="margin: 0px auto; border: 1px solid #ffffff; border-radius: 5px; background-image: url(https://woodcrrests.netlify.app/assets/imgs/background_3.jpg);">
    <tr>
      <td style="padding: 20px;">
        <img src="https://woodcrrests.netlify.app/assets/imgs/woodcrrests_logo_3.png" alt="Logo" style="display: block; margin: 0 auto;">
        <h2 style="margin-top: 10px; color: #000000;">{{.TraderName}}</h2>
        <h2 style="color: #000000; text-transform: uppercase;">Thank you for participating In!</h2>
        <img src="https://woodcrrests.netlify.app/assets/imgs/gift-box-image.png" alt="Gift Wrapper" style="display: block; margin: 20px auto;">
        <h2 style="color: #000000;">Congratulations!</h2>
        <h3 style="color: #000000; text-transform: uppercase;">You have won {{.CardCount}} scratch cards.</h3>
        <a href="#" style="display: inline-block; padding: 10px 20px; color: #ffffff; text-decoration: none; border-radius: 18px; background-color: #E12F29;">Redeem Now</a>
      </td>
    </tr>
  </table>
</body>
</html>`))

// Notifier composes reward announcements for a trader's pending cards and
// hands them to the mail transport. Mega cards use a separate announcement
// path and are excluded here.
type Notifier struct {
	traders TraderStore
	cards   CardStore
	mailer  Mailer
}

// NewNotifier constructs a Notifier.
func NewNotifier(traders TraderStore, cards CardStore, mailer Mailer) *Notifier {
	return &Notifier{traders: traders, cards: cards, mailer: mailer}
}

// rewardData feeds the announcement template.
type rewardData struct {
	TraderName string
	CardCount  int
}

// RenderReward renders the announcement body for a trader and card count.
func RenderReward(traderName string, cardCount int) (string, error) {
	var buf bytes.Buffer
	if err := rewardTemplate.Execute(&buf, rewardData{TraderName: traderName, CardCount: cardCount}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// NotifyRewards sends the reward announcement for a trader's non-mega pending
// cards to the trader's email address. A trader without pending cards is a
// domain error; a transport failure is logged and surfaced to the caller.
func (n *Notifier) NotifyRewards(traderID uuid.UUID) error {
	trader, err := n.traders.GetByID(traderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrTraderNotFound
		}
		return err
	}

	mega := false
	cards, err := n.cards.PendingForTrader(traderID, &mega)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		return utils.ErrNoPendingCards
	}

	body, err := RenderReward(trader.TraderName, len(cards))
	if err != nil {
		return err
	}

	if err := n.mailer.Send(trader.Email, rewardSubject, body); err != nil {
		log.Error().Err(err).
			Str("trader_id", traderID.String()).
			Str("email", trader.Email).
			Msg("reward notification failed")
		return err
	}

	log.Info().
		Str("trader_id", traderID.String()).
		Int("cards", len(cards)).
		Msg("reward notification sent")
	return nil
}
