/*
Package model contains the entities of the world state view, the
commands that change them and the interfaces of the processes that
validate and apply those commands.
*/
package model
