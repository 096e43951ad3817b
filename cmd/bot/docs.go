package main

// @title           Commerce Assistant Bot API
// @version         1.0
// @description     Conversational commerce assistant: channel messages, catalog dialogs and the in-conversation payment negotiation protocol

// @contact.name   API Support

// @host      localhost:3978
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description JWT channel authentication using the Bearer scheme. Example: "Bearer {token}"
