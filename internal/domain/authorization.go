package domain

import "fmt"

// Authorization is the recursive tagged union describing how a
// transaction claims the right to act: directly as the account itself,
// as an admin acting on the account, or through a chain of proxy hops
// that eventually bottoms out in one of the two. See spec.md §9's design
// note: modeled here as an interface hierarchy plus the fold-style
// helpers in package authz, since Go has no native sum types.
type Authorization interface {
	authTag() string
	MarshalJSON() ([]byte, error)
}

// SelfAuthorized means the transaction acts directly as the account it
// names — no proxying, no admin.
type SelfAuthorized struct{}

func (SelfAuthorized) authTag() string { return "SelfAuthorized" }

func (a SelfAuthorized) MarshalJSON() ([]byte, error) {
	return encodeCase(a.authTag())
}

// AdminAuthorized means the transaction is performed by AdminId acting
// as an administrator of the named account.
type AdminAuthorized struct {
	AdminId AccountId
}

func (AdminAuthorized) authTag() string { return "AdminAuthorized" }

func (a AdminAuthorized) MarshalJSON() ([]byte, error) {
	return encodeCase(a.authTag(), a.AdminId)
}

// ProxyAuthorized means ProxyId is acting on behalf of whatever Tail
// authorizes, one hop closer to the account the transaction names.
type ProxyAuthorized struct {
	ProxyId AccountId
	Tail    Authorization
}

func (ProxyAuthorized) authTag() string { return "ProxyAuthorized" }

func (a ProxyAuthorized) MarshalJSON() ([]byte, error) {
	return encodeCase(a.authTag(), a.ProxyId, a.Tail)
}

// UnmarshalAuthorization decodes the Case/Fields wire shape into the
// concrete Authorization variant it names, recursing into Tail for
// ProxyAuthorized.
func UnmarshalAuthorization(data []byte) (Authorization, error) {
	tag, fields, err := decodeCase(data)
	if err != nil {
		return nil, fmt.Errorf("domain: decode Authorization: %w", err)
	}
	switch tag {
	case "SelfAuthorized":
		return SelfAuthorized{}, nil
	case "AdminAuthorized":
		var adminId AccountId
		if err := field(tag, fields, 0, &adminId); err != nil {
			return nil, err
		}
		return AdminAuthorized{AdminId: adminId}, nil
	case "ProxyAuthorized":
		var proxyId AccountId
		if err := field(tag, fields, 0, &proxyId); err != nil {
			return nil, err
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("domain: ProxyAuthorized: missing tail field")
		}
		tail, err := UnmarshalAuthorization(fields[1])
		if err != nil {
			return nil, fmt.Errorf("domain: ProxyAuthorized tail: %w", err)
		}
		return ProxyAuthorized{ProxyId: proxyId, Tail: tail}, nil
	default:
		return nil, fmt.Errorf("domain: unknown Authorization Case %q", tag)
	}
}
