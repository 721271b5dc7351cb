package prosodymock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wake/snikket-web-portal/internal/muc"
)

func TestParseRoundTripsBuilderOutput(t *testing.T) {
	const (
		room = "lobby@groups.chat.protype.tw"
		user = "alice@chat.protype.tw"
	)

	cmd, err := Parse(muc.ListRooms("groups.chat.protype.tw"))
	require.NoError(t, err)
	assert.Equal(t, Command{Op: OpList, Domain: "groups.chat.protype.tw"}, cmd)

	cmd, err = Parse(muc.GetAffiliation(room, user))
	require.NoError(t, err)
	assert.Equal(t, Command{Op: OpGetAffiliation, Room: room, User: user}, cmd)

	cmd, err = Parse(muc.SetAffiliation(room, user, muc.AffiliationOutcast))
	require.NoError(t, err)
	assert.Equal(t, Command{Op: OpSetAffiliation, Room: room, User: user, Affiliation: "outcast"}, cmd)
}

func TestParseUndoesQuoteEscapes(t *testing.T) {
	domain := "x');os.exit(1);--.protype.tw"

	cmd, err := Parse(muc.ListRooms(domain))
	require.NoError(t, err)
	assert.Equal(t, domain, cmd.Domain)
}

func TestParseRejects(t *testing.T) {
	for _, text := range []string{
		"",
		"os.exit(1)",
		"muc:list(groups)",
		"muc:list('a') ; os.exit(1)",
		"muc:list('a'')",
		"muc:room('r'):destroy()",
		"muc:room('r'):set_affiliation(false, 'u', 'owner')",
	} {
		_, err := Parse(text)
		assert.ErrorIs(t, err, ErrSyntax, text)
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "list", OpList.String())
	assert.Equal(t, "set_affiliation", OpSetAffiliation.String())
	assert.Equal(t, "Op(9)", Op(9).String())
}
