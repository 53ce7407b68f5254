/*
Package propflowsdk is the Go client for the PropFlow onboarding service.

# Client and Session

Client covers the public endpoints: invitation lookup, signup with an
invitation, login, bootstrap, health and JWKS. Login returns a Session for
the authenticated endpoints:

	client := propflowsdk.NewClient("https://api.propflow.example")

	session, err := client.Login(ctx, "ops@propflow.example", password)
	if err != nil {
		return err
	}

	issued, err := session.IssueInvitation(ctx, propflowsdk.IssueInvitationRequest{
		Scope:        "platform",
		AssignedPlan: "pro",
		CompanyName:  "Harbour Realty",
		Email:        "owner@harbour.example",
	})
	fmt.Println(issued.InviteURL) // the token is only ever returned here

Sessions do not refresh. Once the access token expires every call returns
ErrSessionExpired and the caller logs in again.

# Errors

Every non-2xx response decodes into an *APIError. The predefined values
compare by code, so

	errors.Is(err, propflowsdk.ErrExpired)

works whatever description the server sent. IsInvitationError groups the
four codes that make an invitation unusable.

# Onboarding

Onboarding is the state machine behind the invitee signup form:

	ob := propflowsdk.NewOnboarding(client, tokenFromLink)
	if err := ob.Load(ctx); err != nil {
		showToast(ob.Toast()) // state is invalid or failed
		return
	}
	account, err := ob.Submit(ctx, propflowsdk.SignupRequest{
		Email:    email,
		Password: password,
		FullName: name,
	})

Invitation errors move the form to invalid, which is terminal. Credential
errors and provisioning failures leave it retryable.
*/
package propflowsdk
